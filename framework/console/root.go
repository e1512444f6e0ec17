// Package console is the artax command line.
package console

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/km-arc/go-artax/framework/app"
	"github.com/km-arc/go-artax/framework/config"
	"github.com/km-arc/go-artax/framework/container"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// options are the global flags.
type options struct {
	envFiles []string
	bindings string
	logLevel string
}

// NewRootCommand builds the artax command tree. providers are registered on
// top of the framework providers before any command runs.
func NewRootCommand(providers ...container.ServiceProvider) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "artax",
		Short: "Reflective constructor injection, inspected",
		Long: `artax builds objects by symbolic name, injecting every constructor
parameter from caller overrides, the bindings file or the declared type.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load (default .env)")
	flags.StringVar(&opts.bindings, "bindings", "", "bindings file (overrides ARTAX_BINDINGS)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		newServeCommand(opts, providers),
		newExplainCommand(opts, providers),
		newMakeCommand(opts, providers),
		newTypesCommand(opts, providers),
		newBindCommand(opts),
	)
	return root
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context, providers ...container.ServiceProvider) error {
	return NewRootCommand(providers...).ExecuteContext(ctx)
}

// loadConfig reads env files and applies flag overrides.
func (o *options) loadConfig() *config.Config {
	cfg := config.Load(o.envFiles...)
	if o.bindings != "" {
		cfg.Artax.Bindings = o.bindings
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg
}

// bootstrap creates and boots the application with providers.
func (o *options) bootstrap(ctx context.Context, providers []container.ServiceProvider) (*app.Application, error) {
	a, err := app.New(ctx, o.loadConfig())
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	a.Boot()
	return a, nil
}
