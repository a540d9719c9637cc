package main

import (
	"fmt"
	"log"

	"papertrade/cmd"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	_ "github.com/lib/pq"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "papertrade",
		Short: "stock-trading simulator backend",
	}

	var port int
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the http api",
		RunE: func(c *cobra.Command, args []string) error {
			handler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(handler)

			return handler.StartApi(port)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 5000, "port to listen on")

	var userID string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "create a demo portfolio with the standard starting balance",
		RunE: func(c *cobra.Command, args []string) error {
			id := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid user id: %w", err)
				}
				id = parsed
			}

			portfolio, err := cmd.SeedDemoPortfolio(id)
			if err != nil {
				return err
			}

			fmt.Printf("created portfolio %s for user %s with balance %s\n",
				portfolio.PortfolioID, portfolio.UserID, portfolio.CashBalance.StringFixed(2))
			return nil
		},
	}
	seedCmd.Flags().StringVar(&userID, "user-id", "", "user id to attach the portfolio to (random if omitted)")

	rootCmd.AddCommand(serveCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
