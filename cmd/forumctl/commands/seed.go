package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"forum/backend/internal/database"
	"forum/backend/internal/logger"
	"forum/backend/internal/seed"
)

var seedFile string

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the seed accounts that do not exist yet",
	Long: `Create the accounts listed in a seed file. Usernames that already exist are skipped.

Examples:
  forumctl seed                          # Seed the built-in admin and moderator
  forumctl seed --file ./staff.yaml      # Seed from a custom file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		created, err := seed.Run(cmd.Context(), db, f, logger.WithField("component", "seed"))
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d of %d seed users\n", created, len(f.Users))
		return err
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML seed file (defaults to the built-in accounts)")
	rootCmd.AddCommand(seedCmd)
}
