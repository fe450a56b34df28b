package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"forum/backend/internal/database"
	"forum/backend/internal/models"
	"forum/backend/internal/service"
)

// setRoleCmd represents the set-role command
var setRoleCmd = &cobra.Command{
	Use:   "set-role <username> <role>",
	Short: "Change a user's role (Admin, Moderator or Member)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		users := service.NewUserService(db)
		id, err := users.FindByUsername(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		user, err := users.SetRole(cmd.Context(), id, models.Role(args[1]))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d) is now %s\n", user.Username, user.ID, user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setRoleCmd)
}
