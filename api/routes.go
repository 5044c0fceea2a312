package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"glasslink/application"
	"glasslink/auth"
	"glasslink/category"
	"glasslink/config"
	"glasslink/job"
	"glasslink/message"
	"glasslink/quote"
	"glasslink/tradesperson"
)

// SetupRoutes wires repositories, services and handlers onto a router.
func SetupRoutes(cfg *config.Config, pool *pgxpool.Pool) *mux.Router {
	authSvc := auth.NewService(auth.NewRepository(pool), cfg.JWTSecret, cfg.TokenDuration)
	catSvc := category.NewService(category.NewRepository(pool))
	jobSvc := job.NewService(job.NewRepository(pool))
	tradeSvc := tradesperson.NewService(tradesperson.NewRepository(pool))
	quoteSvc := quote.NewService(quote.NewRepository(pool))
	appSvc := application.NewService(application.NewRepository(pool))
	msgSvc := message.NewService(message.NewRepository(pool))

	return Router(cfg, authSvc, catSvc, jobSvc, tradeSvc, quoteSvc, appSvc, msgSvc)
}

// Router assembles the full route table from already-built services. Tests
// use it to mount fake-backed services without a database.
//
// Protected handlers are wrapped individually rather than grouped under a
// subrouter: literal paths such as /api/tradespeople/profile must be
// registered ahead of /api/tradespeople/{id} regardless of auth.
func Router(
	cfg *config.Config,
	authSvc *auth.Service,
	catSvc *category.Service,
	jobSvc *job.Service,
	tradeSvc *tradesperson.Service,
	quoteSvc *quote.Service,
	appSvc *application.Service,
	msgSvc *message.Service,
) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	if cfg.RateLimitRPS > 0 {
		r.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	// Handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(authSvc, tradeSvc)
	usersHandler := NewUsersHandler(authSvc)
	categoriesHandler := NewCategoriesHandler(catSvc)
	jobsHandler := NewJobsHandler(jobSvc)
	tradespeopleHandler := NewTradespeopleHandler(tradeSvc, quoteSvc, appSvc)
	messagesHandler := NewMessagesHandler(msgSvc)

	authed := AuthMiddleware(authSvc)
	protect := func(h http.HandlerFunc) http.Handler { return authed(h) }

	r.HandleFunc("/health", systemHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.Handle("/api/auth/user", protect(authHandler.CurrentUser)).Methods("GET")

	r.Handle("/api/users/profile", protect(usersHandler.UpdateProfile)).Methods("PUT")
	r.HandleFunc("/api/users/{id}", usersHandler.GetPublicProfile).Methods("GET")

	r.HandleFunc("/api/categories", categoriesHandler.List).Methods("GET")
	r.HandleFunc("/api/categories/{id}", categoriesHandler.Get).Methods("GET")

	r.HandleFunc("/api/jobs", jobsHandler.List).Methods("GET")
	r.Handle("/api/jobs", protect(jobsHandler.Create)).Methods("POST")
	r.Handle("/api/jobs/user/{userId}", protect(jobsHandler.ListByUser)).Methods("GET")
	r.HandleFunc("/api/jobs/{id}", jobsHandler.Get).Methods("GET")
	r.Handle("/api/jobs/{id}", protect(jobsHandler.Update)).Methods("PUT")
	r.Handle("/api/jobs/{id}", protect(jobsHandler.Delete)).Methods("DELETE")

	r.Handle("/api/tradespeople/register", protect(tradespeopleHandler.Register)).Methods("POST")
	r.Handle("/api/tradespeople/profile", protect(tradespeopleHandler.OwnProfile)).Methods("GET")
	r.Handle("/api/tradespeople/profile", protect(tradespeopleHandler.UpdateOwnProfile)).Methods("PUT")
	r.HandleFunc("/api/tradespeople/search", tradespeopleHandler.Search).Methods("GET")
	r.HandleFunc("/api/tradespeople/featured", tradespeopleHandler.Featured).Methods("GET")
	r.HandleFunc("/api/tradespeople/{id}", tradespeopleHandler.Detail).Methods("GET")
	r.Handle("/api/tradespeople/{id}/portfolio", protect(tradespeopleHandler.AddPortfolioItem)).Methods("POST")
	r.Handle("/api/tradespeople/{id}/quote", protect(tradespeopleHandler.SubmitQuote)).Methods("POST")
	r.Handle("/api/tradespeople/{id}/quotes", protect(tradespeopleHandler.ListQuotes)).Methods("GET")
	r.Handle("/api/tradespeople/{id}/apply", protect(tradespeopleHandler.Apply)).Methods("POST")
	r.Handle("/api/tradespeople/{id}/applications", protect(tradespeopleHandler.ListApplications)).Methods("GET")
	r.Handle("/api/tradespeople/{id}/reviews", protect(tradespeopleHandler.AddReview)).Methods("POST")

	r.Handle("/api/messages", protect(messagesHandler.Send)).Methods("POST")
	r.Handle("/api/messages/conversations/{userId}", protect(messagesHandler.Conversations)).Methods("GET")
	r.Handle("/api/messages/{jobId}/{userId}", protect(messagesHandler.ListForJob)).Methods("GET")

	return r
}
