package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/thatchakomP/pixel-cat-callior/controllers"
	"github.com/thatchakomP/pixel-cat-callior/events"
	auth "github.com/thatchakomP/pixel-cat-callior/middleware"
)

// Deps is everything the router hands requests to.
type Deps struct {
	Auth           *controllers.AuthController
	Profile        *controllers.ProfileController
	Food           *controllers.FoodController
	Broker         *events.Broker
	JWTSecret      []byte
	AllowedOrigins []string
	// UploadDir is served under /uploads when images are stored locally.
	UploadDir string
}

func SetupRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public
	r.Post("/api/user/register", d.Auth.Register)
	r.Post("/api/auth/login", d.Auth.Login)
	r.Get("/api/goals", controllers.Goals)

	r.Group(func(r chi.Router) {
		r.Use(auth.JWT(d.JWTSecret))

		r.Post("/api/user/onboard", d.Profile.Onboard)
		r.Get("/api/user/profile", d.Profile.Get)
		r.Put("/api/user/profile", d.Profile.SetActiveCat)
		r.Put("/api/user/profile/update-stats", d.Profile.UpdateStats)
		r.Get("/api/cats", d.Profile.Catalog)

		r.Post("/api/food/upload", d.Food.Upload)
		r.Get("/api/food/logs", d.Food.Logs)

		// Server-Sent Events for unlock notifications
		r.Get("/sse/unlocks", UnlocksSSE(d.Broker))
	})

	if d.UploadDir != "" {
		fileServer(r, "/uploads", http.Dir(d.UploadDir))
	}
	return r
}

func fileServer(r chi.Router, path string, root http.FileSystem) {
	fs := http.StripPrefix(path, http.FileServer(root))
	r.Get(path+"/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		fs.ServeHTTP(w, req)
	})
}
