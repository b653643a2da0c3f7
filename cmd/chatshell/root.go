package main

import (
	"fmt"
	"os"

	"chatshell/pkg/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatshell",
	Short: "chatshell is a terminal chat demo with section navigation and dictation",
	Long: `chatshell renders a ChatGPT-style conversation in the terminal. Every
message gets the same canned reply after a short delay; the sidebar switches
between sections that share one conversation.`,
	SilenceUsage: true,
	RunE:         runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.GetConfigPath(), "Path to the configuration file")
	rootCmd.Flags().String("env-file", ".env", "Path to a .env file with CHATSHELL_* overrides")
	rootCmd.Flags().String("section", "", "Section to open at startup (main-chat, calibration-workspace, define-color-bounds)")
	rootCmd.Flags().String("log-level", "", "Log level override (debug, info, warn, error)")
}
