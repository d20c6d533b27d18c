package http

import (
	"log/slog"
	"net/http"
	"time"

	"streakboard/internal/auth"
	"streakboard/internal/config"
	"streakboard/internal/http/handler"
	mw "streakboard/internal/http/middleware"
	"streakboard/internal/jobs"
	"streakboard/internal/motivation"
	"streakboard/internal/store"
	"streakboard/internal/tracker"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	DB        *gorm.DB
	JWT       *auth.JWT
	Generator motivation.Generator
	Logger    *slog.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

func NewRouter(cfg config.Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	st := &store.Store{DB: deps.DB}
	jobsRepo := &jobs.Repo{DB: deps.DB}
	svc := &tracker.Service{
		Store:    st,
		Refills:  jobsRepo,
		Location: cfg.Location,
		Now:      deps.Now,
		Logger:   logger,
	}
	generator := deps.Generator
	if generator == nil {
		generator = motivation.Static{}
	}
	refiller := &jobs.Refiller{Store: st, Generator: generator}

	limit := cfg.LoginRateLimit
	if limit <= 0 {
		limit = 10
	}
	limiter := mw.NewRateLimiter(limit, time.Minute)

	ah := &handler.AuthHandler{
		Auth:         &auth.Service{DB: deps.DB, JWT: deps.JWT},
		Tracker:      svc,
		CookieSecure: cfg.CookieSecure,
	}
	data := &handler.DataHandler{Svc: svc}
	tasks := &handler.TaskHandler{Svc: svc}
	milestones := &handler.MilestoneHandler{Svc: svc}
	day := &handler.DayHandler{Svc: svc, Refiller: refiller}
	me := &handler.MeHandler{DB: deps.DB}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(limiter, mw.ClientIP))
			r.Post("/register", ah.Register)
			r.Post("/login", ah.Login)
		})
		r.Post("/logout", ah.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(deps.JWT))

			r.Get("/me", me.Me)

			r.Get("/data", data.Get)
			r.Post("/data", data.Replace)
			r.Get("/view", data.View)
			r.Get("/calendar", data.Calendar)
			r.Get("/journal", data.Journal)

			r.Post("/tasks", tasks.Add)
			r.Post("/tasks/clear-all", tasks.ClearAll)
			r.Delete("/tasks/{cat}/{task}", tasks.Delete)
			r.Post("/tasks/{cat}/{task}/toggle", tasks.Toggle)

			r.Post("/categories", tasks.AddCategory)
			r.Delete("/categories/{index}", tasks.DeleteCategory)

			r.Post("/milestones", milestones.Add)
			r.Delete("/milestones/{ref}", milestones.Delete)
			r.Post("/milestones/{ref}/toggle", milestones.Toggle)

			r.Post("/complete-day", day.CompleteDay)
			r.Post("/bad-habits/relapse", day.RelapseByBody)
			r.Post("/bad-habits/{index}/relapse", day.Relapse)
			r.Post("/motivation/refresh", day.RefreshMotivation)
			r.Post("/admin/generate-quotes", day.GenerateQuotes)
		})
	})

	return r
}
