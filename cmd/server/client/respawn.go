package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	adminv1alpha1 "github.com/KirkDiggler/rpg-arena/internal/handlers/admin/v1alpha1"
)

var connectionID string

var respawnCmd = &cobra.Command{
	Use:   "respawn",
	Short: "Respawn a connection",
	Long:  `Spawn a fresh entity for a connection, bypassing the start barrier.`,
	RunE:  runRespawn,
}

func init() {
	respawnCmd.Flags().StringVar(&connectionID, "connection-id", "", "Connection ID (required)")
	_ = respawnCmd.MarkFlagRequired("connection-id") // nolint:errcheck // safe to ignore in init
}

func runRespawn(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createAdminClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.RequestRespawn(ctx, &adminv1alpha1.RequestRespawnRequest{ConnectionID: connectionID})
	if err != nil {
		return fmt.Errorf("failed to respawn: %w", errors.FromGRPCError(err))
	}

	if !resp.Respawned {
		fmt.Printf("Connection %s was not respawned\n", connectionID)
		return nil
	}
	fmt.Printf("Connection %s respawned as %s\n", connectionID, resp.EntityID)
	return nil
}
