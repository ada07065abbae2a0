package cmd

import (
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to Maarg in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}
