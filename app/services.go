// Package app is a small demo domain wired through the container: two
// loggers behind one interface, a mailer taking a parameter object and a
// service using both.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-artax/framework/container"
)

// Logger is what the domain logs through.
type Logger interface {
	Log(msg string) error
}

// ConsoleLogger logs through the application's zap logger.
type ConsoleLogger struct {
	out *zap.Logger
}

func NewConsoleLogger(out *zap.Logger) *ConsoleLogger {
	return &ConsoleLogger{out: out.Named("console")}
}

func (l *ConsoleLogger) Log(msg string) error {
	l.out.Info(msg)
	return nil
}

// FileLogger appends lines to a file.
type FileLogger struct {
	Path string
	mu   sync.Mutex
}

func NewFileLogger(path string) *FileLogger {
	return &FileLogger{Path: path}
}

func (l *FileLogger) Log(msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, msg)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// MailerParams are the Mailer's dependencies.
type MailerParams struct {
	container.In

	Logger Logger
	From   string `name:"from"`
}

// Mailer pretends to send mail and logs what it would have sent.
type Mailer struct {
	logger Logger
	from   string
}

func NewMailer(p MailerParams) *Mailer {
	return &Mailer{logger: p.Logger, from: p.From}
}

func (m *Mailer) From() string { return m.from }

func (m *Mailer) Send(to, subject string) error {
	return m.logger.Log(fmt.Sprintf("mail from=%s to=%s subject=%q", m.from, to, subject))
}

// Service is the demo's entry point.
type Service struct {
	Logger Logger
	Mailer *Mailer
}

func NewService(logger Logger, mailer *Mailer) *Service {
	return &Service{Logger: logger, Mailer: mailer}
}

// Welcome logs and mails a greeting.
func (s *Service) Welcome(user string) error {
	if err := s.Logger.Log("welcoming " + user); err != nil {
		return err
	}
	return s.Mailer.Send(user, "Welcome!")
}

// Report summarises what a Service was built with.
type Report struct {
	Service *Service
}

func NewReport(s *Service) *Report { return &Report{Service: s} }

func (r *Report) String() string {
	return fmt.Sprintf("service logger=%T mailer from=%s logger=%T",
		r.Service.Logger, r.Service.Mailer.from, r.Service.Mailer.logger)
}
