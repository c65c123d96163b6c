package api

import (
	"bytes"
	"time"

	json "github.com/json-iterator/go"
)

var codec = json.ConfigCompatibleWithStandardLibrary

// Auth request/response types
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

// Token is returned by login and signup.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// User is an account identity.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Author is the short user reference embedded in posts, comments and
// notifications.
type Author struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

// Sentiment is the server-side analysis attached to a post.
type Sentiment struct {
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Toxicity   string  `json:"toxicity,omitempty"`
}

type Media struct {
	ID        int64     `json:"id"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is a read-mostly copy of a server post.
type Post struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Author        Author     `json:"author"`
	Content       string     `json:"content"`
	MediaURL      string     `json:"media_url,omitempty"`
	Media         []Media    `json:"media,omitempty"`
	Visibility    string     `json:"visibility,omitempty"`
	Location      string     `json:"location,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	LikesCount    int        `json:"likes_count"`
	CommentsCount int        `json:"comments_count"`
	IsLiked       bool       `json:"is_liked"`
	UserReaction  string     `json:"user_reaction,omitempty"`
	Sentiment     *Sentiment `json:"sentiment,omitempty"`
}

type CreatePostRequest struct {
	Content  string  `json:"content"`
	MediaURL *string `json:"media_url"`
}

type UpdatePostRequest struct {
	Content  string  `json:"content,omitempty"`
	MediaURL *string `json:"media_url,omitempty"`
}

// PostList is a page of posts. The API sends {"posts": [...]} with
// paging fields; a bare array is accepted too.
type PostList struct {
	Posts    []Post `json:"posts"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	HasMore  bool   `json:"has_more"`
}

func (l *PostList) UnmarshalJSON(data []byte) error {
	if isArray(data) {
		l.Posts = nil
		return codec.Unmarshal(data, &l.Posts)
	}
	type plain PostList
	return codec.Unmarshal(data, (*plain)(l))
}

// Reaction types accepted by the API.
const (
	ReactionLike  = "like"
	ReactionLove  = "love"
	ReactionHaha  = "haha"
	ReactionWow   = "wow"
	ReactionSad   = "sad"
	ReactionAngry = "angry"
)

var reactionTypes = map[string]bool{
	ReactionLike: true, ReactionLove: true, ReactionHaha: true,
	ReactionWow: true, ReactionSad: true, ReactionAngry: true,
}

type ReactionRequest struct {
	ReactionType string `json:"reaction_type"`
}

// ReactionSummary is the post's reaction state after a toggle.
type ReactionSummary struct {
	Total        int            `json:"total"`
	Breakdown    map[string]int `json:"breakdown"`
	UserReaction *string        `json:"user_reaction"`
}

// Comment is fetched per post and never cached globally.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id,omitempty"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []Comment `json:"replies,omitempty"`
}

type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// CommentList accepts {"comments": [...]} or a bare array.
type CommentList struct {
	Comments []Comment `json:"comments"`
}

func (l *CommentList) UnmarshalJSON(data []byte) error {
	if isArray(data) {
		l.Comments = nil
		return codec.Unmarshal(data, &l.Comments)
	}
	type plain CommentList
	return codec.Unmarshal(data, (*plain)(l))
}

// Notification is a server-generated event for the current user.
type Notification struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Content    string    `json:"content,omitempty"`
	ObjectID   *int64    `json:"object_id,omitempty"`
	ObjectType string    `json:"object_type,omitempty"`
	Actor      *Author   `json:"actor,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationList accepts {"notifications": [...]} or a bare array.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
}

func (l *NotificationList) UnmarshalJSON(data []byte) error {
	if isArray(data) {
		l.Notifications = nil
		return codec.Unmarshal(data, &l.Notifications)
	}
	type plain NotificationList
	return codec.Unmarshal(data, (*plain)(l))
}

// UnreadCount accepts {"unread_count": n} or {"unread": n}.
type UnreadCount struct {
	UnreadCount *int `json:"unread_count"`
	Unread      *int `json:"unread"`
}

// Value returns the count from whichever field the server sent.
func (u UnreadCount) Value() int {
	switch {
	case u.UnreadCount != nil:
		return *u.UnreadCount
	case u.Unread != nil:
		return *u.Unread
	}
	return 0
}

// Profile is the extended, editable part of an account.
type Profile struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name,omitempty"`
	Country        string    `json:"country,omitempty"`
	City           string    `json:"city,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Birthdate      string    `json:"birthdate,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	Address        string    `json:"address,omitempty"`
	Platform       string    `json:"platform,omitempty"`
	Handle         string    `json:"handle,omitempty"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Address   string `json:"address,omitempty"`
	Handle    string `json:"handle,omitempty"`
}

// Follow is the edge created by following a user.
type Follow struct {
	FollowerID  int64     `json:"follower_id"`
	FollowingID int64     `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserList is a page of followers or followed users.
type UserList struct {
	Users    []Author `json:"users"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	HasMore  bool     `json:"has_more"`
}

type FollowStatus struct {
	IsFollowing bool `json:"is_following"`
}

// Health is the API liveness payload.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func isArray(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
