package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

type options struct {
	debug      bool
	configFile string
	deps       *dependencies
}

func (o *options) load(logOut io.Writer) error {
	v, err := newViper(o.configFile)
	if err != nil {
		return err
	}

	config, err := getConfig(v, o.debug)
	if err != nil {
		return err
	}

	o.deps, err = createDependencies(config, logOut)

	return err
}

func (o *options) close() {
	if o.deps != nil {
		o.deps.cleanup()
	}
}

func newRootCommand(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "currency-converter",
		Short:        "USD to BRL conversion with IOF and state tax",
		Version:      "v2.0.0",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "./config.yml", "Path to config file")

	rootCmd.AddCommand(
		convert(opts),
		quote(opts),
		serve(opts),
	)

	return rootCmd
}

func Execute(ctx context.Context) error {
	opts := &options{}
	defer opts.close()

	return newRootCommand(opts).ExecuteContext(ctx)
}
