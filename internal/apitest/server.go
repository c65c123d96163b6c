// Package apitest runs an in-memory ConnectSphere API for tests. It keeps
// just enough server state (users, posts, reactions, comments,
// notifications, follows, profiles) to exercise the client end to end,
// and answers with the same envelopes the real backend uses.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/connectsphere/cli/pkg/api"
	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// Hook runs before every request. Returning true means the hook wrote
// the response and normal handling is skipped.
type Hook func(w http.ResponseWriter, r *http.Request) bool

type account struct {
	user     api.User
	password string
	profile  api.Profile
}

type notification struct {
	recipient int64
	api.Notification
}

// Server is a fake API backed by httptest.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	nextID        int64
	accounts      map[int64]*account
	tokens        map[string]int64
	posts         []*api.Post
	reactions     map[int64]map[int64]string
	comments      map[int64][]api.Comment
	notifications []*notification
	follows       map[int64]map[int64]time.Time
	calls         map[string]int
	hook          Hook
}

// New starts a fake server that is closed when t finishes.
func New(t testing.TB) *Server {
	s := &Server{
		accounts:  map[int64]*account{},
		tokens:    map[string]int64{},
		reactions: map[int64]map[int64]string{},
		comments:  map[int64][]api.Comment{},
		follows:   map[int64]map[int64]time.Time{},
		calls:     map[string]int{},
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.countCalls, s.runHook)

	router.GET("/health", s.health)

	auth := router.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/signup", s.signup)

	authed := router.Group("/")
	authed.Use(s.requireToken)

	users := authed.Group("/users")
	users.GET("/me", s.getMe)
	users.PUT("/me", s.updateMe)
	users.GET("/:id", s.getUser)

	posts := authed.Group("/posts")
	posts.POST("", s.createPost)
	posts.GET("/feed", s.feed)
	posts.GET("/trending", s.trending)
	posts.GET("/user/:id", s.postsByUser)
	posts.GET("/:id", s.getPost)
	posts.PUT("/:id", s.updatePost)
	posts.POST("/:id/react", s.react)

	comments := authed.Group("/comments")
	comments.POST("/posts/:id", s.createComment)
	comments.GET("/posts/:id", s.listComments)
	comments.DELETE("/:id", s.deleteComment)

	notifications := authed.Group("/notifications")
	notifications.GET("", s.listNotifications)
	notifications.GET("/unread-count", s.unreadCount)
	notifications.PATCH("/:id/read", s.markRead)

	profiles := authed.Group("/profiles")
	profiles.GET("/me", s.getMyProfile)
	profiles.PUT("/me", s.updateMyProfile)
	profiles.GET("/:id", s.getProfile)

	follows := authed.Group("/follows")
	follows.POST("/:id", s.follow)
	follows.DELETE("/:id", s.unfollow)
	follows.GET("/:id/followers", s.followers)
	follows.GET("/:id/following", s.following)
	follows.GET("/:id/status", s.followStatus)

	return router
}

func (s *Server) countCalls(c *gin.Context) {
	s.mu.Lock()
	s.calls[c.Request.Method+" "+c.Request.URL.Path]++
	s.mu.Unlock()
	c.Next()
}

func (s *Server) runHook(c *gin.Context) {
	s.mu.Lock()
	hook := s.hook
	s.mu.Unlock()

	if hook != nil && hook(c.Writer, c.Request) {
		c.Abort()
		return
	}
	c.Next()
}

// SetHook installs h, replacing any previous hook. nil removes it.
func (s *Server) SetHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = h
}

// Calls returns how many requests hit "METHOD /path".
func (s *Server) Calls(methodAndPath string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[methodAndPath]
}

// TotalCalls returns the number of requests received.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// AddUser registers an account directly and returns it.
func (s *Server) AddUser(email, password, username, fullName string) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, username, fullName).user
}

// AddFakeUser registers an account with generated details.
func (s *Server) AddFakeUser(password string) api.User {
	username := strings.ToLower(gofakeit.Username())
	return s.AddUser(gofakeit.Email(), password, username, gofakeit.Name())
}

// TokenFor issues a fresh token for userID.
func (s *Server) TokenFor(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueTokenLocked(userID)
}

// SeedPosts creates n posts by authorID and returns them oldest first.
func (s *Server) SeedPosts(authorID int64, n int) []api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Post, 0, n)
	for i := 0; i < n; i++ {
		p := s.addPostLocked(authorID, gofakeit.Sentence(8), "")
		out = append(out, *p)
	}
	return out
}

// Notify delivers a notification to userID.
func (s *Server) Notify(userID int64, kind, content string) api.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifyLocked(userID, 0, kind, content, 0, "")
}

// Post returns the server's view of a post as seen by viewerID.
func (s *Server) Post(postID, viewerID int64) (api.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPostLocked(postID)
	if p == nil {
		return api.Post{}, false
	}
	return s.viewLocked(p, viewerID), true
}

func (s *Server) addUserLocked(email, password, username, fullName string) *account {
	s.nextID++
	now := time.Now().UTC()
	acc := &account{
		user: api.User{
			ID:        s.nextID,
			Username:  username,
			FullName:  fullName,
			Email:     email,
			Role:      "user",
			IsActive:  true,
			CreatedAt: now,
		},
		password: password,
	}
	s.nextID++
	acc.profile = api.Profile{ID: s.nextID, UserID: acc.user.ID, Name: fullName, CreatedAt: now}
	s.accounts[acc.user.ID] = acc
	return acc
}

func (s *Server) issueTokenLocked(userID int64) string {
	token := "tok-" + strconv.FormatInt(userID, 10) + "-" + gofakeit.UUID()
	s.tokens[token] = userID
	return token
}

func (s *Server) addPostLocked(authorID int64, content, mediaURL string) *api.Post {
	s.nextID++
	acc := s.accounts[authorID]
	p := &api.Post{
		ID:         s.nextID,
		UserID:     authorID,
		Author:     api.Author{ID: authorID, Username: acc.user.Username},
		Content:    content,
		MediaURL:   mediaURL,
		Visibility: "public",
		CreatedAt:  time.Now().UTC(),
		Sentiment:  &api.Sentiment{Label: "neutral", Score: 0.5, Confidence: 0.9, Toxicity: "none"},
	}
	s.posts = append(s.posts, p)
	return p
}

func (s *Server) notifyLocked(recipient, actorID int64, kind, content string, objectID int64, objectType string) api.Notification {
	s.nextID++
	n := &notification{recipient: recipient, Notification: api.Notification{
		ID:         s.nextID,
		Type:       kind,
		Content:    content,
		ObjectType: objectType,
		CreatedAt:  time.Now().UTC(),
	}}
	if objectID != 0 {
		id := objectID
		n.ObjectID = &id
	}
	if actor, ok := s.accounts[actorID]; ok {
		n.Actor = &api.Author{ID: actor.user.ID, Username: actor.user.Username}
	}
	s.notifications = append(s.notifications, n)
	return n.Notification
}

func (s *Server) findPostLocked(id int64) *api.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Server) viewLocked(p *api.Post, viewerID int64) api.Post {
	v := *p
	v.LikesCount = len(s.reactions[p.ID])
	v.CommentsCount = len(s.comments[p.ID])
	if rt, ok := s.reactions[p.ID][viewerID]; ok {
		v.IsLiked = true
		v.UserReaction = rt
	}
	return v
}

func (s *Server) pageLocked(posts []*api.Post, viewerID int64, c *gin.Context) api.PostList {
	page, pageSize := paging(c)
	start := (page - 1) * pageSize
	list := api.PostList{Posts: []api.Post{}, Total: len(posts), Page: page, PageSize: pageSize}
	for i := start; i < len(posts) && i < start+pageSize; i++ {
		list.Posts = append(list.Posts, s.viewLocked(posts[i], viewerID))
	}
	list.HasMore = start+pageSize < len(posts)
	return list
}

func (s *Server) newestFirstLocked() []*api.Post {
	out := make([]*api.Post, len(s.posts))
	for i, p := range s.posts {
		out[len(s.posts)-1-i] = p
	}
	return out
}

// handlers

func (s *Server) requireToken(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	s.mu.Lock()
	userID, ok := s.tokens[token]
	s.mu.Unlock()
	if !ok {
		abortDetail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, api.Health{Status: "ok", Version: "1.0.0"})
}

func (s *Server) login(c *gin.Context) {
	var req api.LoginRequest
	if !bind(c, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.Email == req.Email && acc.password == req.Password {
			c.JSON(http.StatusOK, api.Token{AccessToken: s.issueTokenLocked(acc.user.ID), RefreshToken: gofakeit.UUID(), TokenType: "bearer"})
			return
		}
	}
	writeDetail(c, http.StatusUnauthorized, "Incorrect email or password")
}

func (s *Server) signup(c *gin.Context) {
	var req api.SignupRequest
	if !bind(c, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.Email == req.Email {
			writeDetail(c, http.StatusBadRequest, "Email already registered")
			return
		}
		if acc.user.Username == req.Username {
			writeDetail(c, http.StatusBadRequest, "Username already taken")
			return
		}
	}
	acc := s.addUserLocked(req.Email, req.Password, strings.ToLower(req.Username), req.FullName)
	c.JSON(http.StatusCreated, api.Token{AccessToken: s.issueTokenLocked(acc.user.ID), TokenType: "bearer"})
}

func (s *Server) getMe(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.accounts[userID].user)
}

func (s *Server) updateMe(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	var req api.UpdateUserRequest
	if !bind(c, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[userID]
	if req.Username != "" {
		acc.user.Username = req.Username
	}
	if req.Email != "" {
		acc.user.Email = req.Email
	}
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, found := s.accounts[id]
	if !found {
		writeDetail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) createPost(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	var req api.CreatePostRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeDetail(c, http.StatusUnprocessableEntity, "content must not be empty")
		return
	}
	media := ""
	if req.MediaURL != nil {
		media = *req.MediaURL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.addPostLocked(userID, req.Content, media)
	c.JSON(http.StatusCreated, s.viewLocked(p, userID))
}

func (s *Server) feed(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.pageLocked(s.newestFirstLocked(), userID, c))
}

func (s *Server) trending(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.newestFirstLocked()
	sort.SliceStable(posts, func(i, j int) bool {
		ei := len(s.reactions[posts[i].ID]) + len(s.comments[posts[i].ID])
		ej := len(s.reactions[posts[j].ID]) + len(s.comments[posts[j].ID])
		return ei > ej
	})
	c.JSON(http.StatusOK, s.pageLocked(posts, userID, c))
}

func (s *Server) postsByUser(c *gin.Context) {
	viewerID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []*api.Post
	for _, p := range s.newestFirstLocked() {
		if p.UserID == id {
			posts = append(posts, p)
		}
	}
	c.JSON(http.StatusOK, s.pageLocked(posts, viewerID, c))
}

func (s *Server) getPost(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPostLocked(id)
	if p == nil {
		writeDetail(c, http.StatusNotFound, "Post not found")
		return
	}
	c.JSON(http.StatusOK, s.viewLocked(p, userID))
}

func (s *Server) updatePost(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	var req api.UpdatePostRequest
	if !bind(c, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPostLocked(id)
	if p == nil {
		writeDetail(c, http.StatusNotFound, "Post not found")
		return
	}
	if p.UserID != userID {
		writeDetail(c, http.StatusForbidden, "Not allowed to edit this post")
		return
	}
	if req.Content != "" {
		p.Content = req.Content
	}
	if req.MediaURL != nil {
		p.MediaURL = *req.MediaURL
	}
	now := time.Now().UTC()
	p.UpdatedAt = &now
	c.JSON(http.StatusOK, s.viewLocked(p, userID))
}

func (s *Server) react(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	var req api.ReactionRequest
	if !bind(c, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPostLocked(id)
	if p == nil {
		writeDetail(c, http.StatusNotFound, "Post not found")
		return
	}
	byUser := s.reactions[id]
	if byUser == nil {
		byUser = map[int64]string{}
		s.reactions[id] = byUser
	}
	switch current, exists := byUser[userID]; {
	case exists && current == req.ReactionType:
		delete(byUser, userID)
	case exists:
		byUser[userID] = req.ReactionType
	default:
		byUser[userID] = req.ReactionType
		if p.UserID != userID {
			s.notifyLocked(p.UserID, userID, "like", s.accounts[userID].user.Username+" reacted to your post", id, "post")
		}
	}

	summary := api.ReactionSummary{Total: len(byUser), Breakdown: map[string]int{}}
	for _, rt := range byUser {
		summary.Breakdown[rt]++
	}
	if rt, ok := byUser[userID]; ok {
		summary.UserReaction = &rt
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) createComment(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	var req api.CreateCommentRequest
	if !bind(c, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findPostLocked(id)
	if p == nil {
		writeDetail(c, http.StatusNotFound, "Post not found")
		return
	}
	s.nextID++
	author := s.accounts[userID].user
	comment := api.Comment{
		ID:        s.nextID,
		PostID:    id,
		UserID:    userID,
		ParentID:  req.ParentID,
		Author:    api.Author{ID: author.ID, Username: author.Username},
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	s.comments[id] = append(s.comments[id], comment)
	if p.UserID != userID {
		s.notifyLocked(p.UserID, userID, "comment", author.Username+" commented on your post", id, "post")
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) listComments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := api.CommentList{Comments: append([]api.Comment{}, s.comments[id]...)}
	c.JSON(http.StatusOK, list)
}

func (s *Server) deleteComment(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for postID, comments := range s.comments {
		for i, comment := range comments {
			if comment.ID != id {
				continue
			}
			if comment.UserID != userID {
				writeDetail(c, http.StatusForbidden, "Not allowed to delete this comment")
				return
			}
			s.comments[postID] = append(comments[:i:i], comments[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	writeDetail(c, http.StatusNotFound, "Comment not found")
}

func (s *Server) listNotifications(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.Notification{}
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if n := s.notifications[i]; n.recipient == userID {
			out = append(out, n.Notification)
		}
	}
	// The backend returns a bare array here.
	c.JSON(http.StatusOK, out)
}

func (s *Server) markRead(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id && n.recipient == userID {
			n.IsRead = true
			c.Status(http.StatusNoContent)
			return
		}
	}
	writeDetail(c, http.StatusNotFound, "Notification not found")
}

func (s *Server) unreadCount(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if n.recipient == userID && !n.IsRead {
			count++
		}
	}
	c.JSON(http.StatusOK, map[string]int{"unread": count})
}

func (s *Server) getMyProfile(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.profileLocked(userID))
}

func (s *Server) updateMyProfile(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	var req api.UpdateProfileRequest
	if !bind(c, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.accounts[userID].profile
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.City != "" {
		p.City = req.City
	}
	if req.Country != "" {
		p.Country = req.Country
	}
	if req.Handle != "" {
		p.Handle = req.Handle
	}
	c.JSON(http.StatusOK, s.profileLocked(userID))
}

func (s *Server) getProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.accounts[id]; !found {
		writeDetail(c, http.StatusNotFound, "Profile not found")
		return
	}
	c.JSON(http.StatusOK, s.profileLocked(id))
}

func (s *Server) profileLocked(userID int64) api.Profile {
	p := s.accounts[userID].profile
	p.FollowingCount = len(s.follows[userID])
	for _, following := range s.follows {
		if _, ok := following[userID]; ok {
			p.FollowersCount++
		}
	}
	return p
}

func (s *Server) follow(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.accounts[id]; !found {
		writeDetail(c, http.StatusNotFound, "User not found")
		return
	}
	if id == userID {
		writeDetail(c, http.StatusBadRequest, "You cannot follow yourself")
		return
	}
	if s.follows[userID] == nil {
		s.follows[userID] = map[int64]time.Time{}
	}
	if _, exists := s.follows[userID][id]; exists {
		writeDetail(c, http.StatusBadRequest, "Already following")
		return
	}
	now := time.Now().UTC()
	s.follows[userID][id] = now
	s.notifyLocked(id, userID, "follow", s.accounts[userID].user.Username+" started following you", userID, "user")
	c.JSON(http.StatusOK, api.Follow{FollowerID: userID, FollowingID: id, CreatedAt: now})
}

func (s *Server) unfollow(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.follows[userID][id]; !exists {
		writeDetail(c, http.StatusNotFound, "Not following")
		return
	}
	delete(s.follows[userID], id)
	c.Status(http.StatusNoContent)
}

func (s *Server) followers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for follower, following := range s.follows {
		if _, ok := following[id]; ok {
			ids = append(ids, follower)
		}
	}
	c.JSON(http.StatusOK, s.userListLocked(ids, c))
}

func (s *Server) following(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for followed := range s.follows[id] {
		ids = append(ids, followed)
	}
	c.JSON(http.StatusOK, s.userListLocked(ids, c))
}

func (s *Server) followStatus(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, following := s.follows[userID][id]
	c.JSON(http.StatusOK, api.FollowStatus{IsFollowing: following})
}

func (s *Server) userListLocked(ids []int64, c *gin.Context) api.UserList {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	page, pageSize := paging(c)
	start := (page - 1) * pageSize
	list := api.UserList{Users: []api.Author{}, Total: len(ids), Page: page, PageSize: pageSize}
	for i := start; i < len(ids) && i < start+pageSize; i++ {
		u := s.accounts[ids[i]].user
		list.Users = append(list.Users, api.Author{ID: u.ID, Username: u.Username})
	}
	list.HasMore = start+pageSize < len(ids)
	return list
}

func paging(c *gin.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}
	return page, pageSize
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeDetail(c, http.StatusUnprocessableEntity, "invalid id")
		return 0, false
	}
	return id, true
}

func bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		writeDetail(c, http.StatusUnprocessableEntity, "invalid body")
		return false
	}
	return true
}

// writeDetail answers with the backend's {"detail": ...} error shape.
func writeDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
