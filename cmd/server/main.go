// Package main is the entry point for the arena server and its admin client
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/cmd/server/client"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:          "rpg-arena",
	Short:        "Real-time arena combat server",
	Long:         `rpg-arena runs an authoritative arena: players connect over websockets, pick a character and fight; operators inspect the match over gRPC.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serverCmd, client.ClientCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
