package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/output"
	"github.com/fatih/color"
)

const timeLayout = "2006-01-02 15:04"

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
	Faint   = color.New(color.Faint)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	output.PrintSuccess(format, args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	output.PrintError(format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	output.PrintInfo(format, args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	output.PrintWarning(format, args...)
}

// PrintTable prints data as a table
func PrintTable(headers []string, rows [][]string) {
	output.PrintTable(headers, rows)
}

// PrintObject prints an object based on output format
func PrintObject(data interface{}, name string) error {
	return output.Print(name, data)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(data map[string]interface{}) {
	output.PrintRecord("", data)
}

// FormatPost renders a post as a few lines of text.
func FormatPost(p api.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n",
		Bold.Sprintf("#%d", p.ID),
		Info.Sprintf("@%s", authorName(p.Author, p.UserID)),
		Faint.Sprint(p.CreatedAt.Local().Format(timeLayout)))
	fmt.Fprintf(&b, "   %s\n", indentLines(p.Content, "   "))
	if p.MediaURL != "" {
		fmt.Fprintf(&b, "   media: %s\n", p.MediaURL)
	}

	reacted := ""
	if p.IsLiked {
		r := p.UserReaction
		if r == "" {
			r = api.ReactionLike
		}
		reacted = Success.Sprintf(" (you: %s)", r)
	}
	fmt.Fprintf(&b, "   ♥ %d%s | 💬 %d", p.LikesCount, reacted, p.CommentsCount)
	if p.Sentiment != nil && p.Sentiment.Label != "" {
		fmt.Fprintf(&b, " | mood: %s", p.Sentiment.Label)
	}
	if p.UpdatedAt != nil {
		b.WriteString(Faint.Sprint(" | edited"))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatComment renders a comment and its replies, indented by depth.
func FormatComment(c api.Comment, depth int) string {
	pad := strings.Repeat("  ", depth)
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s  %s\n", pad,
		Bold.Sprintf("#%d", c.ID),
		Info.Sprintf("@%s", authorName(c.Author, c.UserID)),
		Faint.Sprint(c.CreatedAt.Local().Format(timeLayout)))
	fmt.Fprintf(&b, "%s   %s\n", pad, indentLines(c.Content, pad+"   "))
	for _, reply := range c.Replies {
		b.WriteString(FormatComment(reply, depth+1))
	}
	return b.String()
}

// FormatNotification renders a notification on one line.
func FormatNotification(n api.Notification) string {
	marker := Warning.Sprint("●")
	if n.IsRead {
		marker = Faint.Sprint("○")
	}
	text := n.Content
	if text == "" {
		text = n.Type
		if n.Actor != nil {
			text = fmt.Sprintf("@%s %s", n.Actor.Username, n.Type)
		}
	}
	return fmt.Sprintf("%s %s %s  %s\n", marker, Bold.Sprintf("#%d", n.ID), text,
		Faint.Sprint(n.CreatedAt.Local().Format(timeLayout)))
}

// FormatReactionSummary renders the post's reactions after a toggle.
func FormatReactionSummary(s api.ReactionSummary) string {
	kinds := make([]string, 0, len(s.Breakdown))
	for kind := range s.Breakdown {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s %d", kind, s.Breakdown[kind]))
	}

	line := fmt.Sprintf("%d reaction%s", s.Total, plural(s.Total))
	if len(parts) > 0 {
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	if s.UserReaction != nil {
		line += ", yours: " + *s.UserReaction
	} else {
		line += ", yours: none"
	}
	return line
}

// FormatTime formats a timestamp for display; zero times render as "never".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format(timeLayout)
}

// Truncate shortens s to max runes, adding an ellipsis when cut.
func Truncate(s string, max int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func authorName(a api.Author, fallbackID int64) string {
	if a.Username != "" {
		return a.Username
	}
	if a.ID != 0 {
		return fmt.Sprintf("user%d", a.ID)
	}
	return fmt.Sprintf("user%d", fallbackID)
}

func indentLines(s, pad string) string {
	return strings.ReplaceAll(s, "\n", "\n"+pad)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
