package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/stctl/swiftype"
)

var (
	usersPage    int
	usersPerPage int
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the users of a platform application",
	Long: `Manage the users of a platform application. Requires the platform client id
and secret (swiftype.platform_client_id / swiftype.platform_client_secret).`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the users of the application",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := client.Users(cmd.Context(), swiftype.PageOptions{Page: usersPage, PerPage: usersPerPage})
		if err != nil {
			return err
		}
		return newPrinter(cmd).Records("user", users)
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.User(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(user)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.CreateUser(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info().Str("id", user.ID()).Msg("User created")
		return newPrinter(cmd).Record(user)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd)

	usersListCmd.Flags().IntVar(&usersPage, "page", 0, "page number")
	usersListCmd.Flags().IntVar(&usersPerPage, "per-page", 0, "users per page")
}
