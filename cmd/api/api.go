package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"diljourney/docs" // required to serve swagger docs
	"diljourney/internal/auth"
	"diljourney/internal/domain/storage"
	"diljourney/internal/mailer"
	"diljourney/internal/media"
	"diljourney/internal/ratelimiter"
	"diljourney/internal/ratings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	media         media.Uploader // nil when Cloudinary is not configured
	mailer        mailer.Client  // nil when SMTP is not configured
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	ratings       *ratings.Recalculator
	wg            sync.WaitGroup
}

type config struct {
	addr        string
	env         string
	apiURL      string
	clientURL   string
	db          dbConfig
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
	media       mediaConfig
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type mediaConfig struct {
	cloudinaryURL string
	folder        string
}

type dbConfig struct {
	driver      string
	mongoURI    string
	mongoDB     string
	addr        string
	maxConns    int
	maxIdleTime time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.routeNotFoundHandler)
	r.MethodNotAllowed(app.routeNotFoundHandler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.MetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(app.RateLimiterMiddleware)

	// Signals ctx.Done() on requests that run too long.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", app.healthCheckHandler)
	r.Get("/health", app.healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.registerUserHandler)
			r.Post("/login", app.loginHandler)
			r.With(app.AuthTokenMiddleware).Get("/me", app.getMeHandler)
			r.With(app.AuthTokenMiddleware).Post("/logout", app.logoutHandler)
		})

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", app.listVenuesHandler)
			r.Get("/cities", app.listCitiesHandler)
			r.Get("/mood/{mood}", app.venuesByMoodHandler)
			r.Get("/{venueID}", app.getVenueHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createVenueHandler)
				// DELETE /venues/{venueID}/photos?photo_url={url}
				r.Post("/{venueID}/photos", app.uploadVenuePhotoHandler)
				r.Delete("/{venueID}/photos", app.deleteVenuePhotoHandler)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Put("/update", app.updateProfileHandler)
			r.Put("/change-password", app.changePasswordHandler)
			r.Get("/saved-venues", app.savedVenuesHandler)
			r.Post("/save-venue/{venueID}", app.saveVenueHandler)
			r.Delete("/save-venue/{venueID}", app.removeSavedVenueHandler)
			r.Get("/my-reviews", app.myReviewsHandler)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/venue/{venueID}", app.listVenueReviewsHandler)
			r.Get("/venue/{venueID}/summary", app.venueReviewSummaryHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/venue/{venueID}", app.createReviewHandler)
				r.Put("/{reviewID}", app.updateReviewHandler)
				r.Delete("/{reviewID}", app.deleteReviewHandler)
			})
		})
	})

	return r
}

func (app *application) allowedOrigins() []string {
	if app.config.clientURL == "" || app.config.clientURL == "*" {
		return []string{"https://*", "http://*"}
	}
	origins := []string{}
	for _, o := range strings.Split(app.config.clientURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)
		app.logger.Infow("waiting for background jobs")
		app.wg.Wait()
		shutdown <- err
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env, "store", app.store.Driver)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
