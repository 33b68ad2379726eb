package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userName     string
	userPassword string
	userAdmin    bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts (admin panel backend)",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.authService()
		if err != nil {
			return err
		}
		u, err := svc.Register(cmd.Context(), userEmail, userName, userPassword)
		if err != nil {
			return err
		}
		if userAdmin {
			if err := svc.SetAdmin(cmd.Context(), u.ID, true); err != nil {
				return err
			}
		}
		fmt.Println(u.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.authService()
		if err != nil {
			return err
		}
		users, err := svc.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		for _, u := range users {
			role := "user"
			if u.Admin {
				role = "admin"
			}
			fmt.Printf("%s  %-30s  %-20s  %s\n", u.ID, u.Email, u.Name, role)
		}
		return nil
	},
}

var userPromoteCmd = &cobra.Command{
	Use:   "promote <id>",
	Short: "Grant the admin flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.authService()
		if err != nil {
			return err
		}
		return svc.SetAdmin(cmd.Context(), args[0], true)
	},
}

var userResetCmd = &cobra.Command{
	Use:   "reset-request",
	Short: "Issue a password-reset token for an email",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.authService()
		if err != nil {
			return err
		}
		return svc.RequestPasswordReset(cmd.Context(), userEmail)
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "account email")
	userAddCmd.Flags().StringVar(&userName, "name", "", "display name")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "initial password")
	userAddCmd.Flags().BoolVar(&userAdmin, "admin", false, "grant admin")
	userResetCmd.Flags().StringVar(&userEmail, "email", "", "account email")
	userCmd.AddCommand(userAddCmd, userListCmd, userPromoteCmd, userResetCmd)
}
