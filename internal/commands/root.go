package commands

import (
	"log/slog"

	"github.com/ppiankov/azspectre/internal/config"
	"github.com/ppiankov/azspectre/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	tenant  string
	version string
	commit  string
	date    string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "azspectre",
	Short: "azspectre — Azure App Service waste and risk auditor",
	Long: `azspectre inventories App Service plans and sites across every Azure
subscription you can see, flags hosting plans with zero attached applications
(pure waste, priced per SKU in USD), and scores each web and function app
against a fixed technical-risk rule set to build a prioritized attention list.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
		} else {
			cfg = loaded
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "Azure tenant ID")
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
