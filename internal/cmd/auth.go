package cmd

import (
	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string

	signupEmail    string
	signupUsername string
	signupFullName string
	signupPassword string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage your ConnectSphere session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to ConnectSphere",
	Long:  "Authenticate with email and password. Missing values are prompted for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(newCore())
		return authSvc.Login(cmd.Context(), loginEmail, loginPassword)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new ConnectSphere account",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(newCore())
		return authSvc.Signup(cmd.Context(), api.SignupRequest{
			Email:    signupEmail,
			Password: signupPassword,
			Username: signupUsername,
			FullName: signupFullName,
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from ConnectSphere",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(sessionCore(cmd.Context()))
		return authSvc.Logout()
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display current authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService(sessionCore(cmd.Context()))
		return authSvc.WhoAmI(cmd.Context())
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")

	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&signupUsername, "username", "", "Username (letters, digits, underscore)")
	signupCmd.Flags().StringVar(&signupFullName, "full-name", "", "Full name")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password, at least 8 characters (prompted when omitted)")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(signupCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}
