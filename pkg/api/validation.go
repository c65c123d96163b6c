package api

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/connectsphere/cli/pkg/client"
)

// Limits mirrored from the server schema.
const (
	MaxPostLength     = 5000
	MaxCommentLength  = 2000
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
)

func validateText(field, text string, max int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &client.ValidationError{Field: field, Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(text) > max {
		return "", &client.ValidationError{Field: field, Reason: "too long"}
	}
	return text, nil
}

// ValidatePostContent trims and checks post content.
func ValidatePostContent(content string) (string, error) {
	return validateText("content", content, MaxPostLength)
}

// ValidateCommentContent trims and checks comment content.
func ValidateCommentContent(content string) (string, error) {
	return validateText("content", content, MaxCommentLength)
}

// ValidateReactionType defaults an empty type to "like".
func ValidateReactionType(reactionType string) (string, error) {
	reactionType = strings.ToLower(strings.TrimSpace(reactionType))
	if reactionType == "" {
		return ReactionLike, nil
	}
	if !reactionTypes[reactionType] {
		return "", &client.ValidationError{Field: "reaction_type", Reason: "must be one of like, love, haha, wow, sad, angry"}
	}
	return reactionType, nil
}

// ValidateSignup checks the registration fields the server would reject.
func ValidateSignup(req SignupRequest) error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return &client.ValidationError{Field: "email", Reason: "not a valid address"}
	}
	if len(req.Password) < MinPasswordLength {
		return &client.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	n := utf8.RuneCountInString(req.Username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return &client.ValidationError{Field: "username", Reason: "must be 3 to 50 characters"}
	}
	for _, r := range req.Username {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return &client.ValidationError{Field: "username", Reason: "may only contain letters, numbers and underscores"}
		}
	}
	return nil
}
