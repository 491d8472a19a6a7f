package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig    string
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "sunday",
	Short: "Terminal AI assistant with live internet data",
	Long: `SUNDAY is a persona-driven chat assistant. It detects when a request needs
live data (weather, news, stock quotes, web search), fetches it, and feeds
it to the chat model as extra context.`,
	RunE: runChat,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "don't record this conversation")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("sunday %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
