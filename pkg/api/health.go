package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
)

// Health checks that the API is reachable. It needs no credential.
func (a *API) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := a.c.Do(ctx, client.Request{Method: http.MethodGet, Path: "/health", Public: true}, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
