package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aleksandr-Gamble/scale-serp/internal/database"
	"github.com/Aleksandr-Gamble/scale-serp/internal/models"
	"github.com/Aleksandr-Gamble/scale-serp/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the local usage accounting database schema.

Available subcommands:
  up      - Apply the schema via GORM auto migration
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the database schema",
	Long: `Bring the usage accounting database schema up to date.

Auto migration creates missing tables, columns and indexes. It never
drops existing columns or data.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func openDatabase() (*database.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.UsageRecord{}); err != nil {
		return err
	}

	fmt.Println("Database schema is up to date")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("Database Schema Status")
	fmt.Println("----------------------")

	tables := []interface{}{&models.UsageRecord{}}
	for _, table := range tables {
		if db.Migrator().HasTable(table) {
			fmt.Printf("  %-20s present\n", tableName(db, table))
		} else {
			fmt.Printf("  %-20s missing (run 'scale-serp migrate up')\n", tableName(db, table))
		}
	}

	return nil
}

func tableName(db *database.DB, model interface{}) string {
	stmt := db.Model(model).Statement
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}
