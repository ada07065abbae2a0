package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
)

var rootCmd = &cobra.Command{
	Use:   "arthamind",
	Short: "AI financial mentor",
	Long:  "ArthaMind — personal-finance companion with Maarg, an AI mentor that answers money questions, quizzes you on what you've learned, and tracks your progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ARTHAMIND_DB env var)")
	rootCmd.PersistentFlags().String("user", "local", "User ID to operate on")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ARTHAMIND_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, docstore.EnsureDir(p)
	}
	return docstore.DefaultDBPath()
}
