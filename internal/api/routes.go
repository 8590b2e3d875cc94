package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sim-feed/user-service/internal/auth"
)

// Routes assembles the router. The auth middleware attaches the verified
// principal when a valid token is present but never rejects a request;
// protected handlers enforce authentication themselves.
func (h *Handler) Routes(mw *Middleware, authmw *auth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(mw.Recoverer)
	r.Use(mw.SecurityHeaders)
	r.Use(chimiddleware.Compress(5))
	r.Use(mw.Timeout(15 * time.Second))
	r.Use(chimiddleware.Heartbeat("/ping"))
	r.Use(mw.CORS(h.config.Security.CORSAllowedOrigins))
	r.Use(mw.RateLimit(h.config.Security.RateLimitRPM))
	r.Use(authmw.Authenticate)

	r.Get("/", h.Index)
	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.CreateUser)
			r.Get("/{id}", h.GetUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
			r.Get("/{userId}/posts", h.ListUserPosts)
		})

		r.Route("/personas", func(r chi.Router) {
			r.Get("/", h.ListPersonas)
			r.Get("/{id}", h.GetPersona)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Post("/", h.CreatePost)
			r.Get("/{id}", h.GetPost)
			r.Delete("/{id}", h.DeletePost)
			r.Post("/{id}/comments", h.CreateComment)
			r.Post("/{id}/likes", h.LikePost)
			r.Delete("/{id}/likes", h.UnlikePost)
		})

		r.Route("/follows", func(r chi.Router) {
			r.Post("/", h.CreateFollow)
			r.Delete("/{id}", h.DeleteFollow)
			r.Get("/users/{userId}/follows", h.ListFollows)
			r.Get("/users/{userId}/followers", h.ListFollowers)
		})

		r.Route("/chats", func(r chi.Router) {
			r.Post("/", h.CreateChat)
			r.Get("/{id}/members", h.ListChatMembers)
			r.Post("/{id}/members", h.AddChatMember)
			r.Delete("/{id}/members/{memberId}", h.RemoveChatMember)
		})
	})

	return r
}
