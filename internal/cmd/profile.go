package cmd

import (
	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	profileUpdate api.UpdateProfileRequest
	userUpdate    api.UpdateUserRequest
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile commands",
	Long:  "View and edit profiles",
}

var profileMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService(sessionCore(cmd.Context()))
		return profileSvc.ViewMyProfile(cmd.Context())
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		profileSvc := service.NewProfileService(sessionCore(cmd.Context()))
		return profileSvc.ViewProfile(cmd.Context(), id)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService(sessionCore(cmd.Context()))
		return profileSvc.UpdateMyProfile(cmd.Context(), profileUpdate)
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Account commands",
}

var userShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		profileSvc := service.NewProfileService(sessionCore(cmd.Context()))
		return profileSvc.ViewUser(cmd.Context(), id)
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your username or email",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService(sessionCore(cmd.Context()))
		return profileSvc.UpdateAccount(cmd.Context(), userUpdate)
	},
}

func init() {
	f := profileUpdateCmd.Flags()
	f.StringVar(&profileUpdate.Name, "name", "", "Display name")
	f.StringVar(&profileUpdate.Handle, "handle", "", "Public handle")
	f.StringVar(&profileUpdate.Country, "country", "", "Country")
	f.StringVar(&profileUpdate.City, "city", "", "City")
	f.StringVar(&profileUpdate.Phone, "phone", "", "Phone number")
	f.StringVar(&profileUpdate.Birthdate, "birthdate", "", "Birthdate (YYYY-MM-DD)")
	f.StringVar(&profileUpdate.Gender, "gender", "", "Gender")
	f.StringVar(&profileUpdate.Address, "address", "", "Address")

	userUpdateCmd.Flags().StringVar(&userUpdate.Username, "username", "", "New username")
	userUpdateCmd.Flags().StringVar(&userUpdate.Email, "email", "", "New email")

	profileCmd.AddCommand(profileMeCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userUpdateCmd)
}
