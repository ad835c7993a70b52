package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hotel-frontend/commands"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	serve := commands.ServeCmd()
	rootCmd := &cobra.Command{
		Use:          "hotel-frontend",
		Short:        "Hotel site backend-for-frontend",
		RunE:         serve.RunE,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		serve,
		commands.MigrateCmd(),
		commands.RoomsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
