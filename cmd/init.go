package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mdpeek/mdpeek/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure mdpeek with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a theme and preview settings, then writes the config file to your user config directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
