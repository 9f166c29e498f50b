package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"edulearn/internal/infrastructure/config"
	"edulearn/internal/infrastructure/database"
	"edulearn/internal/infrastructure/migration"
	"edulearn/internal/infrastructure/repository"
	"edulearn/internal/infrastructure/seeds"
	"edulearn/internal/shared/biztime"
	"edulearn/internal/shared/constants"
	"edulearn/internal/shared/logger"
)

const (
	strategyGoose         = "goose"
	strategyGolangMigrate = "golang-migrate"
	strategyAuto          = "auto"
)

var (
	env       string
	strategy  string
	name      string
	steps     int
	version   int
	plansFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, creating new migration files and seeding the plan catalog.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&strategy, "strategy", "s", strategyGoose, "Migration strategy (goose, golang-migrate, auto)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newForceCommand(),
		newSeedPlansCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a goose script, or an up/down pair with --strategy golang-migrate.`,
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the golang-migrate version and clear the dirty flag",
		RunE:  runForce,
	}
	cmd.Flags().IntVar(&version, "version", 0, "Version to force (required)")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func newSeedPlansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-plans",
		Short: "Upsert the subscription plan catalog",
		Long:  `Create or update subscription plans from the YAML catalog, keyed by plan name.`,
		RunE:  runSeedPlans,
	}
	cmd.Flags().StringVarP(&plansFile, "file", "f", "", "Plan catalog file (default: subscription.plans_file)")
	return cmd
}

func initEnv(withDB bool) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if withDB {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return cfg, logger.NewLogger(), nil
}

func closeDB(log logger.Interface) {
	if err := database.Close(); err != nil {
		log.Errorw("failed to close database", "error", err)
	}
}

func selectStrategy(log logger.Interface) (migration.Strategy, error) {
	switch strategy {
	case strategyGoose:
		return migration.NewGooseStrategy(migration.DefaultGooseScriptsDir, log), nil
	case strategyGolangMigrate:
		return migration.NewGolangMigrateStrategy(migration.DefaultMigrateScriptsDir, log), nil
	case strategyAuto:
		return migration.NewGormAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", strategy)
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDB(log)

	s, err := selectStrategy(log)
	if err != nil {
		return err
	}

	log.Infow("running up migrations", "environment", env, "strategy", s.GetName())
	if err := migration.NewManagerWithStrategy(s, log).Migrate(database.Get()); err != nil {
		return err
	}
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDB(log)

	log.Infow("running down migrations", "environment", env, "strategy", strategy, "steps", steps)

	switch strategy {
	case strategyGoose:
		err = migration.NewGooseStrategy(migration.DefaultGooseScriptsDir, log).MigrateDown(database.Get(), steps)
	case strategyGolangMigrate:
		err = migration.NewGolangMigrateStrategy(migration.DefaultMigrateScriptsDir, log).MigrateDown(database.Get(), steps)
	default:
		return fmt.Errorf("down migration is not supported with %s strategy", strategy)
	}
	if err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDB(log)

	gooseStrategy := migration.NewGooseStrategy(migration.DefaultGooseScriptsDir, log)
	current, err := gooseStrategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Current Version: %d\n", current)

	if err := gooseStrategy.Status(database.Get()); err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv(false)
	if err != nil {
		return err
	}

	switch strategy {
	case strategyGoose:
		if err := migration.NewGooseStrategy(migration.DefaultGooseScriptsDir, log).Create(name); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
	case strategyGolangMigrate:
		upPath, downPath, err := migration.NewGenerator(migration.DefaultMigrateScriptsDir, log).CreateMigration(name)
		if err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		fmt.Printf("  %s\n  %s\n", upPath, downPath)
	default:
		return fmt.Errorf("create is not supported with %s strategy", strategy)
	}

	fmt.Printf("Migration '%s' created successfully\n", name)
	return nil
}

func runForce(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDB(log)

	return migration.NewGolangMigrateStrategy(migration.DefaultMigrateScriptsDir, log).Force(database.Get(), version)
}

func runSeedPlans(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDB(log)

	path := plansFile
	if path == "" {
		path = cfg.Subscription.PlansFile
	}

	catalog, err := seeds.LoadPlanCatalog(path)
	if err != nil {
		return err
	}

	seeder := seeds.NewPlanSeeder(repository.NewPlanRepository(database.Get()), log)
	created, updated, err := seeder.Seed(cmd.Context(), catalog)
	if err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}

	fmt.Printf("Plans seeded: %d created, %d updated\n", created, updated)
	return nil
}
