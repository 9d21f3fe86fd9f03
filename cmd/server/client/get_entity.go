package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	adminv1alpha1 "github.com/KirkDiggler/rpg-arena/internal/handlers/admin/v1alpha1"
)

var (
	entityID      string
	entityOwnerID string
)

var getEntityCmd = &cobra.Command{
	Use:   "get-entity",
	Short: "Show one entity",
	Long:  `Print an entity's health, shield, active statuses and position as JSON.
Address it by --entity-id or by the --connection-id controlling it.`,
	RunE:  runGetEntity,
}

func init() {
	getEntityCmd.Flags().StringVar(&entityID, "entity-id", "", "Entity ID")
	getEntityCmd.Flags().StringVar(&entityOwnerID, "connection-id", "", "Connection controlling the entity")
	getEntityCmd.MarkFlagsOneRequired("entity-id", "connection-id")
	getEntityCmd.MarkFlagsMutuallyExclusive("entity-id", "connection-id")
}

func runGetEntity(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createAdminClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetEntity(ctx, &adminv1alpha1.GetEntityRequest{
		EntityID:     entityID,
		ConnectionID: entityOwnerID,
	})
	if err != nil {
		return fmt.Errorf("failed to get entity: %w", errors.FromGRPCError(err))
	}

	return printJSON(resp.Entity)
}
