package cmd

import (
	"strconv"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/client"
	"github.com/spf13/cobra"
)

// parseID parses a positional id argument.
func parseID(what, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, &client.ValidationError{Field: what + " id", Reason: strconv.Quote(arg) + " is not a positive number"}
	}
	return id, nil
}

type pageFlags struct {
	page     int
	pageSize int
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", api.DefaultPage.Page, "Page number")
	cmd.Flags().IntVar(&p.pageSize, "page-size", api.DefaultPage.PageSize, "Items per page")
}

func (p *pageFlags) value() api.Page {
	return api.Page{Page: p.page, PageSize: p.pageSize}
}
