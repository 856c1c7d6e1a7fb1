package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"time"

	"diljourney/internal/auth"
	"diljourney/internal/domain/storage"
	"diljourney/internal/env"
	"diljourney/internal/mailer"
	"diljourney/internal/media"
	"diljourney/internal/ratelimiter"
	"diljourney/internal/ratings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const devTokenSecret = "diljourney-dev-secret"

// LoadRateLimiterConfig reads the per-IP request budget from the environment.
func LoadRateLimiterConfig() ratelimiter.Config {
	return ratelimiter.Config{
		RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 200),
		TimeFrame:            5 * time.Second,
		Enabled:              env.GetBool("RATE_LIMITER_ENABLED", false),
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger(level zapcore.Level) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

//	@title			DilJourney API
//	@description	Mood-based venue discovery: venues, reviews and user profiles.

//	@contact.name	DilJourney Support

//	@license.name	MIT

//	@BasePath					/api
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token from /auth/login

func main() {
	// A missing .env is fine in containers; real env vars still apply.
	envErr := godotenv.Load()

	cfg := config{
		addr:      env.GetString("ADDR", ":5000"),
		env:       env.GetString("ENV", "development"),
		clientURL: env.GetString("CLIENT_URL", "*"),
		apiURL:    env.GetString("EXTERNAL_URL", "localhost:5000"),
		db: dbConfig{
			driver:      env.GetString("DB_DRIVER", ""),
			mongoURI:    env.GetString("MONGO_URI", ""),
			mongoDB:     env.GetString("MONGO_DB", "diljourney"),
			addr:        env.GetString("DB_ADDR", ""),
			maxConns:    env.GetInt("DB_MAX_CONNS", 30),
			maxIdleTime: env.GetDuration("DB_MAX_IDLE_TIME", 15*time.Minute),
		},
		mail: mailConfig{
			fromEmail: env.GetString("MAIL_FROM", "hello@diljourney.app"),
			smtp: smtpConfig{
				host:     env.GetString("SMTP_HOST", ""),
				port:     env.GetInt("SMTP_PORT", 587),
				username: env.GetString("SMTP_USER", ""),
				password: env.GetString("SMTP_PASS", ""),
			},
		},
		auth: authConfig{
			basic: basicConfig{
				user: env.GetString("AUTH_BASIC_USER", ""),
				pass: env.GetString("AUTH_BASIC_PASS", ""),
			},
			token: tokenConfig{
				secret: env.GetString("JWT_SECRET", ""),
				exp:    env.GetDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
				iss:    "diljourney",
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
		media: mediaConfig{
			cloudinaryURL: env.GetString("CLOUDINARY_URL", ""),
			folder:        env.GetString("CLOUDINARY_FOLDER", "diljourney/venues"),
		},
	}

	level := zapcore.InfoLevel
	if cfg.env == "development" {
		level = zapcore.DebugLevel
	}
	logger, err := NewLogger(level)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Debugw("no .env file loaded", "error", envErr)
	}

	if cfg.auth.token.secret == "" {
		if cfg.env == "production" {
			logger.Fatal("JWT_SECRET must be set in production")
		}
		logger.Warn("JWT_SECRET not set, using an insecure development secret")
		cfg.auth.token.secret = devTokenSecret
	}

	// Storage
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	store, closeStore, err := storage.Open(ctx, storage.Config{
		Driver:       cfg.db.driver,
		MongoURI:     cfg.db.mongoURI,
		MongoDB:      cfg.db.mongoDB,
		PostgresAddr: cfg.db.addr,
		MaxConns:     cfg.db.maxConns,
		MaxIdleTime:  cfg.db.maxIdleTime,
	})
	cancel()
	if err != nil {
		logger.Fatal(err)
	}
	defer closeStore()

	if store.Driver == storage.DriverMemory {
		logger.Warn("no database configured, using in-memory storage; data is lost on restart")
	} else {
		logger.Infow("database connection established", "driver", store.Driver)
	}

	// Media
	var uploader media.Uploader
	if cfg.media.cloudinaryURL != "" {
		cld, err := media.NewCloudinary(cfg.media.cloudinaryURL, cfg.media.folder)
		if err != nil {
			logger.Fatal(err)
		}
		uploader = cld
	} else {
		logger.Warn("CLOUDINARY_URL not set, photo uploads are disabled")
	}

	// Mail
	var mail mailer.Client
	if cfg.mail.smtp.host != "" {
		mail = mailer.NewSMTPMailer(
			cfg.mail.smtp.host,
			cfg.mail.smtp.port,
			cfg.mail.smtp.username,
			cfg.mail.smtp.password,
			cfg.mail.fromEmail,
		)
	} else {
		logger.Info("SMTP_HOST not set, welcome emails are disabled")
	}

	// Rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)
	defer rateLimiter.Stop()

	// Authenticator
	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		media:         uploader,
		mailer:        mail,
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
		ratings:       ratings.NewRecalculator(store.Reviews, store.Venues),
	}

	// Metrics collected at /debug/vars
	expvar.NewString("version").Set(version)
	expvar.NewString("store").Set(store.Driver)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatal(err)
	}
}
