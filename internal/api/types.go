package api

import (
	"time"

	"github.com/sim-feed/user-service/internal/model"
)

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

func newUserDTO(u *model.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Bio:      u.Bio,
	}
}

type PersonaDTO struct {
	PersonaID int64  `json:"personaId"`
	Username  string `json:"username"`
}

func newPersonaDTO(p *model.Persona) *PersonaDTO {
	if p == nil {
		return nil
	}
	return &PersonaDTO{
		PersonaID: p.ID,
		Username:  p.Username,
	}
}

type PostDTO struct {
	User  *UserDTO `json:"user"`
	ID    int64    `json:"id"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
}

func newPostDTO(p *model.Post) PostDTO {
	return PostDTO{
		User:  newUserDTO(p.UserAuthor),
		ID:    p.ID,
		Title: p.Title,
		Body:  p.Body,
	}
}

// FollowDTO carries the follower and whichever target side the edge has.
type FollowDTO struct {
	ID              int64       `json:"id"`
	Follower        *UserDTO    `json:"follower"`
	UserFollowed    *UserDTO    `json:"userFollowed,omitempty"`
	PersonaFollowed *PersonaDTO `json:"personaFollowed,omitempty"`
}

func newFollowDTO(f *model.UserFollow) FollowDTO {
	dto := FollowDTO{
		ID:       f.ID,
		Follower: newUserDTO(f.Follower),
	}
	if f.UserFollowed != nil {
		dto.UserFollowed = newUserDTO(f.UserFollowed)
	} else {
		dto.PersonaFollowed = newPersonaDTO(f.PersonaFollowed)
	}
	return dto
}

type CommentDTO struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	User      *UserDTO  `json:"user"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func newCommentDTO(c *model.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		PostID:    c.PostID,
		User:      newUserDTO(c.UserAuthor),
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

type LikeDTO struct {
	ID     int64    `json:"id"`
	PostID int64    `json:"postId"`
	User   *UserDTO `json:"user"`
}

func newLikeDTO(l *model.Like) LikeDTO {
	return LikeDTO{
		ID:     l.ID,
		PostID: l.PostID,
		User:   newUserDTO(l.User),
	}
}

type ChatDTO struct {
	ID        int64     `json:"id"`
	ChatName  string    `json:"chatName"`
	CreatorID string    `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
}

func newChatDTO(c *model.Chat) ChatDTO {
	return ChatDTO{
		ID:        c.ID,
		ChatName:  c.ChatName,
		CreatorID: c.CreatorID,
		CreatedAt: c.CreatedAt,
	}
}

type ChatMemberDTO struct {
	ID       int64       `json:"id"`
	ChatID   int64       `json:"chatId"`
	User     *UserDTO    `json:"user,omitempty"`
	Persona  *PersonaDTO `json:"persona,omitempty"`
	JoinedAt time.Time   `json:"joinedAt"`
}

func newChatMemberDTO(m *model.ChatMember) ChatMemberDTO {
	return ChatMemberDTO{
		ID:       m.ID,
		ChatID:   m.ChatID,
		User:     newUserDTO(m.User),
		Persona:  newPersonaDTO(m.Persona),
		JoinedAt: m.JoinedAt,
	}
}

// FailedRequestDTO is the uniform error envelope for every failure.
type FailedRequestDTO struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	RequestURI string `json:"requestUri"`
}

// Request bodies

type NewPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type NewFollowRequest struct {
	UserID    *string `json:"userId"`
	PersonaID *int64  `json:"personaId"`
}

type NewUserRequest struct {
	Username string `json:"username"`
}

type UpdateUserRequest struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

type NewCommentRequest struct {
	Body string `json:"body"`
}

type NewChatRequest struct {
	Name string `json:"name"`
}

type NewChatMemberRequest struct {
	UserID    *string `json:"userId"`
	PersonaID *int64  `json:"personaId"`
}

type WelcomeDTO struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
