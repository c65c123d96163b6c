package service

import (
	"fmt"
	"strconv"

	"github.com/connectsphere/cli/pkg/api"
	"github.com/connectsphere/cli/pkg/formatter"
	"github.com/connectsphere/cli/pkg/output"
)

func displayPosts(title string, posts []api.Post, empty string) error {
	if output.IsJSON() {
		return output.Print("posts", posts)
	}
	if len(posts) == 0 {
		output.Printf("%s\n", empty)
		return nil
	}

	if output.GetOutputFormat() == output.FormatTable {
		rows := make([][]string, 0, len(posts))
		for _, p := range posts {
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10),
				"@" + p.Author.Username,
				formatter.Truncate(p.Content, 50),
				strconv.Itoa(p.LikesCount),
				strconv.Itoa(p.CommentsCount),
			})
		}
		output.PrintTable([]string{"ID", "AUTHOR", "CONTENT", "LIKES", "COMMENTS"}, rows)
		return nil
	}

	output.Printf("%s\n\n", formatter.Bold.Sprint(title))
	for _, p := range posts {
		output.Printf("%s\n", formatter.FormatPost(p))
	}
	return nil
}

func displayPost(p *api.Post) error {
	if output.IsJSON() {
		return output.Print("post", p)
	}
	output.Printf("%s", formatter.FormatPost(*p))
	return nil
}

func displayComments(comments []api.Comment) error {
	if output.IsJSON() {
		return output.Print("comments", comments)
	}
	if len(comments) == 0 {
		output.Printf("No comments yet.\n")
		return nil
	}
	for _, c := range comments {
		output.Printf("%s", formatter.FormatComment(c, 0))
	}
	return nil
}

func displayUser(u api.User) error {
	if output.IsJSON() {
		return output.Print("user", u)
	}
	record := map[string]interface{}{
		"ID":       u.ID,
		"Username": u.Username,
		"Email":    u.Email,
		"Active":   u.IsActive,
		"Joined":   formatter.FormatTime(u.CreatedAt),
	}
	if u.FullName != "" {
		record["Full Name"] = u.FullName
	}
	if u.Role != "" {
		record["Role"] = u.Role
	}
	return output.PrintRecord("", record)
}

func displayProfile(p *api.Profile) error {
	if output.IsJSON() {
		return output.Print("profile", p)
	}
	record := map[string]interface{}{
		"User ID":   p.UserID,
		"Followers": p.FollowersCount,
		"Following": p.FollowingCount,
	}
	optional := map[string]string{
		"Name":      p.Name,
		"Handle":    p.Handle,
		"Country":   p.Country,
		"City":      p.City,
		"Phone":     p.Phone,
		"Birthdate": p.Birthdate,
		"Gender":    p.Gender,
		"Address":   p.Address,
		"Platform":  p.Platform,
	}
	for k, v := range optional {
		if v != "" {
			record[k] = v
		}
	}
	return output.PrintRecord("", record)
}

func displayUsers(title string, list *api.UserList) error {
	if output.IsJSON() {
		return output.Print("users", list)
	}
	if len(list.Users) == 0 {
		output.Printf("%s: none\n", title)
		return nil
	}

	output.Printf("%s\n", formatter.Bold.Sprint(title))
	rows := make([][]string, 0, len(list.Users))
	for _, u := range list.Users {
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), "@" + u.Username})
	}
	output.PrintTable([]string{"ID", "USERNAME"}, rows)
	output.Printf("%s\n", pageFooter(len(list.Users), list.Total, list.Page, list.HasMore))
	return nil
}

func pageFooter(shown, total, page int, hasMore bool) string {
	footer := fmt.Sprintf("Showing %d of %d (page %d)", shown, total, page)
	if hasMore {
		footer += ", more available with --page"
	}
	return footer
}
