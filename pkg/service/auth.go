package service

import (
	"context"
	"fmt"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/logger"
	"github.com/connectsphere/cli/pkg/output"
	"github.com/connectsphere/cli/pkg/prompter"
)

// AuthService drives login, signup and logout for the terminal.
type AuthService struct {
	core *Core
}

// NewAuthService creates a new auth service
func NewAuthService(core *Core) *AuthService {
	return &AuthService{core: core}
}

// Login authenticates, prompting for whichever of email and password is
// empty. An existing session is replaced.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	if current, ok := s.core.CurrentUser(); ok {
		formatter.PrintWarning("Already logged in as %s, switching account", current.Username)
	}

	var err error
	if email == "" {
		if email, err = prompter.PromptString("Email: "); err != nil {
			return err
		}
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if password == "" {
		if password, err = prompter.PromptPassword("Password: "); err != nil {
			return err
		}
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if !output.IsJSON() {
		formatter.PrintInfo("Authenticating...")
	}
	if err := s.core.Login(ctx, email, password); err != nil {
		logger.Debug("Login failed", "email", email, "error", err)
		return err
	}

	return s.printSignedIn("Login successful!")
}

// Signup creates an account and signs in to it. Missing fields are
// prompted for.
func (s *AuthService) Signup(ctx context.Context, req api.SignupRequest) error {
	var err error
	if req.Email == "" {
		if req.Email, err = prompter.PromptString("Email: "); err != nil {
			return err
		}
	}
	if req.Username == "" {
		if req.Username, err = prompter.PromptString("Username: "); err != nil {
			return err
		}
	}
	if req.Password == "" {
		if req.Password, err = prompter.PromptPassword("Password: "); err != nil {
			return err
		}
	}

	if err := s.core.Signup(ctx, req); err != nil {
		return err
	}

	return s.printSignedIn("Account created!")
}

// Logout ends the session and forgets the saved credential.
func (s *AuthService) Logout() error {
	current, ok := s.core.CurrentUser()
	s.core.Logout()

	if output.IsJSON() {
		return output.Print("", map[string]bool{"logged_out": true})
	}
	if !ok {
		formatter.PrintInfo("Not logged in")
		return nil
	}
	formatter.PrintSuccess("Logged out %s", current.Username)
	return nil
}

// WhoAmI prints the signed-in identity after re-reading it from the server.
func (s *AuthService) WhoAmI(ctx context.Context) error {
	if !s.core.Session().IsAuthenticated() {
		return client.ErrNotAuthenticated
	}
	if err := s.core.Session().RefreshUser(ctx); err != nil {
		return err
	}
	user, _ := s.core.CurrentUser()
	return displayUser(user)
}

func (s *AuthService) printSignedIn(message string) error {
	user, _ := s.core.CurrentUser()
	if output.IsJSON() {
		return output.Print("user", user)
	}

	formatter.PrintSuccess(message)
	formatter.PrintInfo("Logged in as %s", formatter.Bold.Sprint(user.Username))
	output.Printf("\n")
	return displayUser(user)
}
