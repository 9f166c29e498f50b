package main

import (
	"os"

	"github.com/spf13/cobra"

	"edulearn/internal/interfaces/cli/migrate"
	"edulearn/internal/interfaces/cli/server"
	"edulearn/internal/interfaces/cli/worker"
)

// @title                      EduLearn API
// @version                    1.0
// @description                School onboarding and subscription billing for EduLearn.
// @BasePath                   /api/v1
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "edulearn",
		Short: "EduLearn - school subscription backend",
		Long:  `EduLearn runs the school subscription HTTP API, its background expiry worker and database migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
