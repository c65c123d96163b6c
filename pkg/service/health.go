package service

import (
	"context"

	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/output"
)

// HealthService checks the API
type HealthService struct {
	core *Core
}

// NewHealthService creates a new health service
func NewHealthService(core *Core) *HealthService {
	return &HealthService{core: core}
}

// Check calls the health endpoint and prints the result
func (hs *HealthService) Check(ctx context.Context) error {
	health, err := hs.core.Health(ctx)
	if err != nil {
		return err
	}
	if output.IsJSON() {
		return output.Print("health", health)
	}

	formatter.PrintSuccess("%s is %s", hs.core.BaseURL(), health.Status)
	if health.Version != "" {
		output.Printf("Version: %s\n", health.Version)
	}
	return nil
}
