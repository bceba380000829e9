package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grammar-reminder-bot",
	Short: "Telegram bot for grammar practice sentences and scheduled reminders",
	Long: `Generates practice sentences for random grammar patterns, lets the operator
pick one in a private chat and forwards it to the study group. Posts a
phrase reminder to a second chat on a daily UTC schedule.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, previewCmd, remindCmd)
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
