package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zapulam/ScratchAgentic/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize agentic configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure agentic and generates a .agentic.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
