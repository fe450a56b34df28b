package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"forum/backend/internal/config"
	"forum/backend/internal/database"
	"forum/backend/internal/logger"
)

var (
	// Global flags
	envDir string
	dbURL  string
	pretty bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "forumctl",
	Short: "Administrative tasks for the forum backend",
	Long: `forumctl runs maintenance tasks against the forum database:
schema migration, seeding the default accounts and changing user roles.

The database is taken from --db, or from DATABASE_URL in the .env file
found in --env (environment variables take precedence).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Configure(logger.Config{Level: logger.InfoLevel, Pretty: pretty, Output: cmd.ErrOrStderr()})
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envDir, "env", ".", "Directory containing the .env file")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database URL, overrides DATABASE_URL")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Human-readable log output")
}

// openDB connects to the configured database and brings the schema up to date.
func openDB() (*gorm.DB, error) {
	dsn := dbURL
	if dsn == "" {
		cfg, err := config.Load(envDir)
		if err != nil {
			return nil, err
		}
		dsn = cfg.DatabaseURL
	}
	return database.Connect(dsn)
}
