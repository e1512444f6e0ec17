package app

import (
	"github.com/km-arc/go-artax/framework/container"
)

// Defaults for the demo's primitive settings. Override them in the bindings
// file by pointing the parameter at another name.
const (
	DefaultLogPath  = "storage/logs/app.log"
	DefaultMailFrom = "noreply@example.com"
)

// AppServiceProvider registers the demo domain.
//
//	app.service        *Service   logger → app.consoleLogger
//	app.mailer         *Mailer    logger → app.fileLogger, from → app.mailFrom
//	app.consoleLogger  *ConsoleLogger
//	app.fileLogger     *FileLogger path → app.logPath
//	app.Logger         alias of app.consoleLogger
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(types *container.Registry, b *container.Bindings) {
	types.MustRegisterAs("app.service", NewService, "logger", "mailer")
	types.MustRegisterAs("app.mailer", NewMailer)
	types.MustRegisterAs("app.consoleLogger", NewConsoleLogger, "out")
	types.MustRegisterAs("app.fileLogger", NewFileLogger, "path")
	types.MustRegisterAs("app.logPath", func() string { return DefaultLogPath })
	types.MustRegisterAs("app.mailFrom", func() string { return DefaultMailFrom })

	// Any constructor declaring the Logger interface gets the console
	// logger unless a binding says otherwise.
	if err := types.Alias("app.Logger", "app.consoleLogger"); err != nil {
		panic(err)
	}

	// *Mailer's declared name is "app.Mailer", the same canonical name as
	// "app.mailer", so Service's mailer parameter resolves without a binding.
	b.When("app.mailer").Needs("logger").Give("app.fileLogger")
	b.When("app.mailer").Needs("from").Give("app.mailFrom")
	b.When("app.fileLogger").Needs("path").Give("app.logPath")
}

// ReportServiceProvider is deferred: it registers "app.report" the first
// time something asks for it.
type ReportServiceProvider struct {
	container.BaseProvider
}

func (p *ReportServiceProvider) IsDeferred() bool   { return true }
func (p *ReportServiceProvider) Provides() []string { return []string{"app.report"} }

func (p *ReportServiceProvider) Register(types *container.Registry, b *container.Bindings) {
	types.MustRegisterAs("app.report", NewReport, "service")
	b.When("app.report").Needs("service").Give("app.service")
}
