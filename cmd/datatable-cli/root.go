package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
	templates  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "datatable-cli",
		Short:         "Render data tables through stacked themes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&flags.templates, "templates", "", "Directory with additional theme templates")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newExplainCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
