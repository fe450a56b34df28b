package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"forum/backend/internal/database"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%d tables)\n", len(database.Models()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
