package main

import (
	"os"

	"github.com/spf13/cobra"

	"tixgate/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tixgate",
		Short: "Dwolla payment gateway for ticket sales",
		Long:  `tixgate bridges a ticketing application to Dwolla's off-site payment gateway: hosted checkouts, signed notifications and refunds.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
