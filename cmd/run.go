package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aditi-N-28/ArthaMind/internal/app"
	"github.com/Aditi-N-28/ArthaMind/internal/config"
	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
	"github.com/Aditi-N-28/ArthaMind/internal/mentor"
)

// runChat opens the store, builds dependencies, and launches the TUI.
func runChat(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
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

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	userID, _ := cmd.Flags().GetString("user")
	deps := buildMentorDeps(ctx, cfg, st)

	// Make sure the profile document exists before anything reads it.
	if _, err := deps.Profiles.LoadOrInit(ctx, userID); err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	session, err := mentor.NewSession(ctx, userID, deps)
	if err != nil {
		return fmt.Errorf("load chat session: %w", err)
	}

	return app.Run(app.Options{
		UserID:   userID,
		Session:  session,
		Profiles: deps.Profiles,
		Tracker:  deps.Tracker,
	})
}
