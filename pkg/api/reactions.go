package api

import (
	"context"
	"net/http"

	"github.com/connectsphere/cli/pkg/client"
	"github.com/connectsphere/cli/pkg/logger"
)

// ToggleReaction adds the caller's reaction, switches its type, or removes
// it when the same type is sent again.
func (a *API) ToggleReaction(ctx context.Context, postID int64, reactionType string) (*ReactionSummary, error) {
	reactionType, err := ValidateReactionType(reactionType)
	if err != nil {
		return nil, err
	}
	logger.Debug("Toggling reaction", "post_id", postID, "type", reactionType)

	var summary ReactionSummary
	err = a.c.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   idPath("/posts/%d/react", postID),
		Body:   ReactionRequest{ReactionType: reactionType},
	}, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
