package service

import (
	"context"
	"fmt"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/output"
)

// ProfileService provides profile and account operations
type ProfileService struct {
	core *Core
}

// NewProfileService creates a new profile service
func NewProfileService(core *Core) *ProfileService {
	return &ProfileService{core: core}
}

// ViewMyProfile displays the caller's profile
func (ps *ProfileService) ViewMyProfile(ctx context.Context) error {
	profile, err := ps.core.MyProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	return displayProfile(profile)
}

// ViewProfile displays another user's profile
func (ps *ProfileService) ViewProfile(ctx context.Context, userID int64) error {
	profile, err := ps.core.Profile(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	return displayProfile(profile)
}

// UpdateMyProfile edits the caller's profile. Empty fields are left as
// they are.
func (ps *ProfileService) UpdateMyProfile(ctx context.Context, req api.UpdateProfileRequest) error {
	if req == (api.UpdateProfileRequest{}) {
		return fmt.Errorf("nothing to update")
	}

	profile, err := ps.core.UpdateMyProfile(ctx, req)
	if err != nil {
		return err
	}
	if !output.IsJSON() {
		formatter.PrintSuccess("Profile updated")
	}
	return displayProfile(profile)
}

// ViewUser displays a user account by id
func (ps *ProfileService) ViewUser(ctx context.Context, userID int64) error {
	user, err := ps.core.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	return displayUser(*user)
}

// UpdateAccount changes the caller's username or email
func (ps *ProfileService) UpdateAccount(ctx context.Context, req api.UpdateUserRequest) error {
	if req == (api.UpdateUserRequest{}) {
		return fmt.Errorf("nothing to update")
	}

	user, err := ps.core.UpdateCurrentUser(ctx, req)
	if err != nil {
		return err
	}
	if !output.IsJSON() {
		formatter.PrintSuccess("Account updated")
	}
	return displayUser(*user)
}
