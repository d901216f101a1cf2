package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		// websocket upgrades must not be compressed
		r.With(h.authQuery).Get("/user/stream", h.profileStream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Compress(5, "application/json"))

			// routes without authorization
			r.Post("/auth/signup", h.signUp)
			r.Post("/auth/signin", h.signIn)
			r.Post("/auth/provider", h.signInWithProvider)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)

				r.Post("/auth/signout", h.signOut)

				r.Get("/user/profile", h.getProfile)
				r.Patch("/user/profile", h.updateProfile)
				r.Patch("/user/settings", h.updateSettings)
				r.Put("/user/push-token", h.setPushToken)

				r.Post("/messages", h.createMessage)
				r.Post("/calls", h.createCall)
				r.Post("/stories", h.createStory)
			})

			r.Route("/events", func(r chi.Router) {
				r.Use(h.verifySignature)

				r.Post("/identity", h.identityEvent)
				r.Post("/storage", h.storageEvent)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), "")
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
