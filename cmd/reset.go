package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		userID, _ := cmd.Flags().GetString("user")

		if !yes {
			fmt.Printf("This deletes the profile, chat history, and learning progress for %q.\n", userID)
			fmt.Println("Re-run with --yes to confirm.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := docstore.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		n, err := st.DeleteUser(context.Background(), userID)
		if err != nil {
			return fmt.Errorf("delete user data: %w", err)
		}

		fmt.Printf("Deleted %d documents for %q.\n", n, userID)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
