// Package api wraps every remote resource-action pair of the
// ConnectSphere REST API in a typed method. The wrappers carry no
// business logic; state lives in the session and cache packages.
package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/connectsphere/cli/pkg/client"
)

// Doer is the call primitive the wrappers are written against.
type Doer interface {
	Do(ctx context.Context, req client.Request, out interface{}) error
}

// API exposes one method per endpoint.
type API struct {
	c Doer
}

// New creates the typed API on top of c
func New(c Doer) *API {
	return &API{c: c}
}

// Page selects a page of a paginated collection. Zero values mean server defaults.
type Page struct {
	Page     int
	PageSize int
}

// DefaultPage is the first page with the server's default size.
var DefaultPage = Page{Page: 1, PageSize: 20}

func (p Page) query() map[string]string {
	q := map[string]string{}
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.PageSize > 0 {
		q["page_size"] = strconv.Itoa(p.PageSize)
	}
	return q
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
