package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	adminv1alpha1 "github.com/KirkDiggler/rpg-arena/internal/handlers/admin/v1alpha1"
)

var (
	damageEntityID string
	damageAmount   float64
	damageSource   string
)

var dealDamageCmd = &cobra.Command{
	Use:   "deal-damage",
	Short: "Hit an entity",
	Long:  `Run a hit through the damage pipeline. Shields and damage modifiers apply, and a lethal hit kills the entity.`,
	RunE:  runDealDamage,
}

func init() {
	dealDamageCmd.Flags().StringVar(&damageEntityID, "entity-id", "", "Entity ID (required)")
	dealDamageCmd.Flags().Float64Var(&damageAmount, "amount", 0, "Raw damage before modifiers (required)")
	dealDamageCmd.Flags().StringVar(&damageSource, "source-id", "", "Source credited with the hit (defaults to admin)")
	_ = dealDamageCmd.MarkFlagRequired("entity-id") // nolint:errcheck // safe to ignore in init
	_ = dealDamageCmd.MarkFlagRequired("amount")    // nolint:errcheck // safe to ignore in init
}

func runDealDamage(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createAdminClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.DealDamage(ctx, &adminv1alpha1.DealDamageRequest{
		EntityID: damageEntityID,
		Amount:   damageAmount,
		SourceID: damageSource,
	})
	if err != nil {
		return fmt.Errorf("failed to deal damage: %w", errors.FromGRPCError(err))
	}

	if resp.Entity == nil {
		fmt.Printf("Entity %s took %.1f and died\n", damageEntityID, resp.Applied)
		return nil
	}
	return printJSON(resp)
}
