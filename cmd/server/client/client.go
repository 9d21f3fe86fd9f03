// Package client provides operator commands for the arena admin gRPC service
package client

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	adminv1alpha1 "github.com/KirkDiggler/rpg-arena/internal/handlers/admin/v1alpha1"
	"github.com/KirkDiggler/rpg-arena/internal/platform/otel"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all admin client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Admin client commands for the arena server",
	Long:  `Client commands inspect and operate a running arena through its admin gRPC service.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	ClientCmd.AddCommand(getSessionCmd)
	ClientCmd.AddCommand(getEntityCmd)
	ClientCmd.AddCommand(respawnCmd)
	ClientCmd.AddCommand(dealDamageCmd)
}

// createAdminClient dials the server and returns a client plus its cleanup
func createAdminClient() (adminv1alpha1.AdminServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		otel.DialOption(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return adminv1alpha1.NewAdminServiceClient(conn), cleanup, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
