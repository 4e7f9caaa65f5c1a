package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"lenzooadmin/internal/audit"
	"lenzooadmin/internal/config"
	"lenzooadmin/internal/database"
	"lenzooadmin/internal/handlers"
	"lenzooadmin/internal/inflight"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/logging"
	"lenzooadmin/internal/middleware"
	"lenzooadmin/internal/richtext"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/supersede"
	"lenzooadmin/internal/views"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}
	cfg := config.AppEnv

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	deps := &handlers.Deps{
		API: lenzoo.NewClient(cfg.APIBaseURL, cfg.RequestTimeout,
			lenzoo.WithTracker(inflight.NewTracker()),
			lenzoo.WithLogger(logger),
		),
		Audit:    audit.Nop{},
		Editor:   richtext.NewEditor(),
		Searches: supersede.NewGroup(),
		Log:      logger,
		PageSize: cfg.PageSize,
	}

	if cfg.AuditEnabled() {
		client, db := connectAudit(cfg, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()
		deps.Audit = audit.NewMongoRecorder(db.Collection(database.AuditCollection), logger)
		deps.Ping = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	tmpl, err := views.Templates(cfg.FileBaseURL)
	if err != nil {
		logger.Fatal("templates failed to parse", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	sessions := session.NewManager(cfg.SessionSecret, cfg.CookieSecure)
	router := handlers.NewRouter(deps, sessions, tmpl)
	protect := middleware.CSRF(cfg.CSRFKey, cfg.CookieSecure, nil)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           protect(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("admin console listening",
			zap.String("addr", srv.Addr),
			zap.String("api", cfg.APIBaseURL),
			zap.Bool("audit", deps.Audit.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

// connectAudit opens the audit database. Failing to reach MongoDB at
// startup is fatal since MONGO_URI asked for the audit trail.
func connectAudit(cfg config.Config, logger *zap.Logger) (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	db := client.Database(cfg.MongoDB)
	logger.Info("MongoDB connected", zap.String("db", db.Name()))

	if err := database.EnsureAuditIndexes(ctx, db, logger); err != nil {
		logger.Warn("audit index warning", zap.Error(err))
	}
	return client, db
}
