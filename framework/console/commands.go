package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-artax/framework/config"
	"github.com/km-arc/go-artax/framework/container"
	"github.com/km-arc/go-artax/framework/http/validation"
)

func newServeCommand(opts *options, providers []container.ServiceProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the inspection API on APP_PORT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := opts.bootstrap(ctx, providers)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, a.Shutdown(cmd.Context())) }()
			return a.Run(ctx)
		},
	}
}

func newExplainCommand(opts *options, providers []container.ServiceProvider) *cobra.Command {
	var custom []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "explain <name>",
		Short: "Show where every constructor parameter of a type comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(cmd.Context(), providers)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			overrides := make(map[string]any, len(custom))
			for _, param := range custom {
				overrides[param] = nil
			}
			plan, err := a.Explain(args[0], overrides)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			tree := plan.String()
			head, rest, _ := strings.Cut(tree, "\n")
			_, _ = headerColor.Fprintln(out, head)
			fmt.Fprint(out, rest)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&custom, "custom", nil, "parameters the caller would supply")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	return cmd
}

func newMakeCommand(opts *options, providers []container.ServiceProvider) *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "make <name>",
		Short: "Build a type once and report what was produced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			custom := make(map[string]any, len(set))
			for _, kv := range set {
				param, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--set %q: want param=value", kv)
				}
				custom[param] = value
			}

			a, err := opts.bootstrap(cmd.Context(), providers)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			instance, err := a.MakeContext(cmd.Context(), args[0], custom)
			if err != nil {
				_, _ = errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", args[0])
				return err
			}
			_, _ = successColor.Fprintf(cmd.OutOrStdout(), "✓ %s: %T\n", args[0], instance)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&set, "set", nil, "string override for a parameter, param=value")
	return cmd
}

func newTypesCommand(opts *options, providers []container.ServiceProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered symbolic names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(cmd.Context(), providers)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			out := cmd.OutOrStdout()
			for _, name := range a.Types.Names() {
				fmt.Fprintln(out, name)
			}
			_, _ = dimColor.Fprintf(out, "%d names, %d bound types\n", len(a.Types.Names()), a.Bindings.Len())
			return nil
		},
	}
}

func newBindCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bind <type> <param> <target>",
		Short: "Write a contextual binding to the bindings file",
		Long: `bind records that <param> of <type> is built from <target>.

	artax bind app.service logger app.fileLogger --bindings config/bindings.yaml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.loadConfig().Artax.Bindings
			if path == "" {
				return errors.New("no bindings file: pass --bindings or set ARTAX_BINDINGS")
			}

			table, err := config.LoadBindings(path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if table == nil {
				table = config.Table{}
			}

			typ, param, target := strings.ToLower(args[0]), strings.ToLower(args[1]), args[2]
			if table[typ] == nil {
				table[typ] = make(map[string]string)
			}
			table[typ][param] = target

			if errs := validation.Bindings(table); errs.Has() {
				return errs
			}
			if err := config.SaveBindings(path, table); err != nil {
				return err
			}
			_, _ = successColor.Fprintf(cmd.OutOrStdout(), "✓ %s.%s → %s\n", typ, param, target)
			return nil
		},
	}
}
