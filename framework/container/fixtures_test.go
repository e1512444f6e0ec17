package container_test

import (
	"errors"

	"github.com/km-arc/go-artax/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Logger interface{ Name() string }

type FileLogger struct{ Path string }

func (l *FileLogger) Name() string { return "file" }

func NewFileLogger() *FileLogger { return &FileLogger{Path: "/var/log/app.log"} }

type ConsoleLogger struct{}

func (l *ConsoleLogger) Name() string { return "console" }

func NewConsoleLogger() *ConsoleLogger { return &ConsoleLogger{} }

// Service depends on an interface: only an override or a binding can fill it.
type Service struct{ Logger Logger }

func NewService(logger Logger) *Service { return &Service{Logger: logger} }

// Reporter depends on a concrete type: the declared type is enough.
type Reporter struct{ Logger *FileLogger }

func NewReporter(logger *FileLogger) *Reporter { return &Reporter{Logger: logger} }

// A needs a B and a C; B needs its own C.
type C struct{ ID string }
type B struct{ C *C }
type A struct {
	B *B
	C *C
}

func NewC() *C              { return &C{ID: "fresh"} }
func NewB(c *C) *B          { return &B{C: c} }
func NewA(b *B, c *C) *A    { return &A{B: b, C: c} }
func NewPing(p *Pong) *Ping { return &Ping{Pong: p} }
func NewPong(p *Ping) *Pong { return &Pong{Ping: p} }

type Ping struct{ Pong *Pong }
type Pong struct{ Ping *Ping }

// Repo takes a primitive.
type Repo struct{ DSN string }

func NewRepo(dsn string) *Repo { return &Repo{DSN: dsn} }

// Mailer uses a parameter object.
type MailerParams struct {
	container.In

	Logger    Logger
	Transport *FileLogger `name:"transport"`
	Retries   int
	internal  string
}

type Mailer struct{ P MailerParams }

func NewMailer(p MailerParams) *Mailer { return &Mailer{P: p} }

// Clock has no constructor.
type Clock struct{ Offset int }

var errBoom = errors.New("boom")

type Broken struct{}

func NewBroken() (*Broken, error) { return nil, errBoom }

func NewPanicky() *Broken { panic("nope") }

func NewWorking() (*Broken, error) { return &Broken{}, nil }
