package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sim-feed/user-service/internal/apperr"
	"github.com/sim-feed/user-service/internal/auth"
	"github.com/sim-feed/user-service/internal/chats"
	"github.com/sim-feed/user-service/internal/config"
	"github.com/sim-feed/user-service/internal/follows"
	"github.com/sim-feed/user-service/internal/model"
	"github.com/sim-feed/user-service/internal/posts"
	"github.com/sim-feed/user-service/internal/users"
	"go.uber.org/zap"
)

// Service interfaces consumed by the handlers; the internal/* services
// satisfy them and tests substitute mocks.

type UserService interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, id, username string) (*model.User, error)
	Update(ctx context.Context, userID, requesterID string, params users.UpdateParams) (*model.User, error)
	Delete(ctx context.Context, userID, requesterID string) error
}

type PersonaService interface {
	GetByID(ctx context.Context, id int64) (*model.Persona, error)
	List(ctx context.Context) ([]model.Persona, error)
}

type PostService interface {
	Create(ctx context.Context, newPost posts.NewPost, authorID string) (*model.Post, error)
	ListByAuthor(ctx context.Context, userID string) ([]model.Post, error)
	Delete(ctx context.Context, postID int64, requesterID string) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	AddComment(ctx context.Context, postID int64, requesterID, body string) (*model.Comment, error)
	AddLike(ctx context.Context, postID int64, requesterID string) (*model.Like, error)
	RemoveLike(ctx context.Context, postID int64, requesterID string) error
}

type FollowService interface {
	Follow(ctx context.Context, newFollow follows.NewFollow, requesterID string) (*model.UserFollow, error)
	Delete(ctx context.Context, followID int64, requesterID string) error
	ListFollows(ctx context.Context, userID string) ([]model.UserFollow, error)
	ListFollowers(ctx context.Context, userID string) ([]model.UserFollow, error)
}

type ChatService interface {
	Create(ctx context.Context, name, creatorID string) (*model.Chat, error)
	AddMember(ctx context.Context, chatID int64, newMember chats.NewMember) (*model.ChatMember, error)
	RemoveMember(ctx context.Context, chatID, memberID int64, requesterID string) error
	ListMembers(ctx context.Context, chatID int64) ([]model.ChatMember, error)
}

type Handler struct {
	users    UserService
	personas PersonaService
	posts    PostService
	follows  FollowService
	chats    ChatService
	config   *config.Config
	logger   *zap.SugaredLogger
}

func NewHandler(
	users UserService,
	personas PersonaService,
	posts PostService,
	follows FollowService,
	chats ChatService,
	config *config.Config,
	logger *zap.SugaredLogger,
) *Handler {
	return &Handler{
		users:    users,
		personas: personas,
		posts:    posts,
		follows:  follows,
		chats:    chats,
		config:   config,
		logger:   logger,
	}
}

// Root and health endpoints

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, WelcomeDTO{
		Message: "Welcome to the Sim-Feed's User Service!",
		Status:  "OK",
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// User endpoints

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req NewUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.users.Create(r.Context(), requesterID, req.Username)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/users/"+user.ID)
	h.writeJSON(w, http.StatusCreated, newUserDTO(user))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newUserDTO(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), requesterID, users.UpdateParams{
		ID:       req.ID,
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newUserDTO(user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id"), requesterID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Persona endpoints

func (h *Handler) GetPersona(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	persona, err := h.personas.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newPersonaDTO(persona))
}

func (h *Handler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	personas, err := h.personas.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	dtos := make([]*PersonaDTO, 0, len(personas))
	for i := range personas {
		dtos = append(dtos, newPersonaDTO(&personas[i]))
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// Post endpoints

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req NewPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	post, err := h.posts.Create(r.Context(), posts.NewPost{Title: req.Title, Body: req.Body}, requesterID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/posts/%d", post.ID))
	h.writeJSON(w, http.StatusCreated, newPostDTO(post))
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newPostDTO(post))
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), id, requesterID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}
	postID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req NewCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	comment, err := h.posts.AddComment(r.Context(), postID, requesterID, req.Body)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newCommentDTO(comment))
}

func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}
	postID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	like, err := h.posts.AddLike(r.Context(), postID, requesterID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newLikeDTO(like))
}

func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}
	postID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.posts.RemoveLike(r.Context(), postID, requesterID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	userPosts, err := h.posts.ListByAuthor(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	dtos := make([]PostDTO, 0, len(userPosts))
	for i := range userPosts {
		dtos = append(dtos, newPostDTO(&userPosts[i]))
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// Follow endpoints

func (h *Handler) CreateFollow(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req NewFollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	follow, err := h.follows.Follow(r.Context(), follows.NewFollow{
		UserID:    req.UserID,
		PersonaID: req.PersonaID,
	}, requesterID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/follows/%d", follow.ID))
	h.writeJSON(w, http.StatusCreated, newFollowDTO(follow))
}

func (h *Handler) DeleteFollow(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.follows.Delete(r.Context(), id, requesterID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFollows(w http.ResponseWriter, r *http.Request) {
	edges, err := h.follows.ListFollows(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, followDTOs(edges))
}

func (h *Handler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	edges, err := h.follows.ListFollowers(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, followDTOs(edges))
}

func followDTOs(edges []model.UserFollow) []FollowDTO {
	dtos := make([]FollowDTO, 0, len(edges))
	for i := range edges {
		dtos = append(dtos, newFollowDTO(&edges[i]))
	}
	return dtos
}

// Chat endpoints

func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req NewChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	chat, err := h.chats.Create(r.Context(), req.Name, requesterID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/chats/%d", chat.ID))
	h.writeJSON(w, http.StatusCreated, newChatDTO(chat))
}

func (h *Handler) AddChatMember(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requirePrincipal(w, r); !ok {
		return
	}
	chatID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req NewChatMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	member, err := h.chats.AddMember(r.Context(), chatID, chats.NewMember{
		UserID:    req.UserID,
		PersonaID: req.PersonaID,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newChatMemberDTO(member))
}

func (h *Handler) RemoveChatMember(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}
	chatID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathID(w, r, "memberId")
	if !ok {
		return
	}

	if err := h.chats.RemoveMember(r.Context(), chatID, memberID, requesterID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListChatMembers(w http.ResponseWriter, r *http.Request) {
	chatID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.chats.ListMembers(r.Context(), chatID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	dtos := make([]ChatMemberDTO, 0, len(members))
	for i := range members {
		dtos = append(dtos, newChatMemberDTO(&members[i]))
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// Helpers

// requirePrincipal enforces endpoint-level authentication. The auth
// middleware never rejects requests itself, so endpoints that need a
// principal check here.
func (h *Handler) requirePrincipal(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		h.writeError(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return subject, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid id in URL")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if status >= http.StatusInternalServerError {
		h.logger.Errorw("API error", "message", message, "status", status, "path", r.URL.Path)
	} else {
		h.logger.Debugw("Request rejected", "message", message, "status", status, "path", r.URL.Path)
	}

	h.writeJSON(w, status, FailedRequestDTO{
		Message:    message,
		StatusCode: status,
		RequestURI: r.URL.RequestURI(),
	})
}

// writeServiceError maps service errors onto the envelope: apperr carries
// its own status, a broken authorship invariant is a state error (400), and
// everything else is a 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrExactlyOneRef) {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.writeError(w, r, apperr.StatusOf(err), err.Error())
}
