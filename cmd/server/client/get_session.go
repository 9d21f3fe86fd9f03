package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	adminv1alpha1 "github.com/KirkDiggler/rpg-arena/internal/handlers/admin/v1alpha1"
)

var sessionID string

var getSessionCmd = &cobra.Command{
	Use:   "get-session",
	Short: "Show the session registry",
	Long:  `Print the live session, or a stored snapshot when --session-id names another session.`,
	RunE:  runGetSession,
}

func init() {
	getSessionCmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (defaults to the live session)")
}

func runGetSession(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createAdminClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetSession(ctx, &adminv1alpha1.GetSessionRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to get session: %w", errors.FromGRPCError(err))
	}

	s := resp.Session
	fmt.Printf("Session: %s (live: %t, started: %t)\n", s.ID, resp.Live, s.Started)
	for _, p := range s.Players {
		fmt.Printf("  %-20s %-12s %-16s deaths=%d entity=%s\n",
			p.ConnectionID, p.CharacterID, p.State(), p.Deaths, p.EntityID)
	}
	return nil
}
