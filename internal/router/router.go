package router

import (
	"net/http"

	_ "cyber-kittens/docs"
	mem "cyber-kittens/internal/adapters/storage/memory"
	"cyber-kittens/internal/domain/kittens"
	"cyber-kittens/internal/domain/users"
	"cyber-kittens/internal/middleware"
	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/platform/httpx"
	"cyber-kittens/internal/platform/logger"
	"cyber-kittens/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Verifier auth.AuthVerifier
	Issuer   auth.TokenIssuer

	// Opcionales: si no vienen, se usan repos in-memory.
	Users   users.Repository
	Kittens kittens.Repository

	Logger     logger.Logger
	BcryptCost int
}

const landingPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Cyber Kittens</title></head>
<body>
<h1>Cyber Kittens</h1>
<p>POST /register, POST /login y luego /kittens con <code>Authorization: Bearer &lt;token&gt;</code>.</p>
<p><a href="/swagger/index.html">API docs</a></p>
</body>
</html>
`

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(landingPage))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	userRepo := opts.Users
	if userRepo == nil {
		userRepo = mem.NewUserRepo()
	}
	kittenRepo := opts.Kittens
	if kittenRepo == nil {
		kittenRepo = mem.NewKittenRepoWithOwners(userRepo)
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, opts.Issuer, opts.BcryptCost)
	kittensSvc := kittens.NewService(kittenRepo)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, opts.Verifier)
	kittens.RegisterRoutes(r, kittensSvc, opts.Verifier)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, apperr.New(apperr.KindNotFound, "route not found"))
	})

	return r
}
