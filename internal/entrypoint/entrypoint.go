package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/ai"
	"github.com/mrlokans/studyhub/internal/audit"
	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/config"
	"github.com/mrlokans/studyhub/internal/database"
	auditrepo "github.com/mrlokans/studyhub/internal/database/audit"
	"github.com/mrlokans/studyhub/internal/database/collections"
	"github.com/mrlokans/studyhub/internal/database/conversations"
	"github.com/mrlokans/studyhub/internal/database/questions"
	"github.com/mrlokans/studyhub/internal/database/subjects"
	"github.com/mrlokans/studyhub/internal/database/users"
	http_controllers "github.com/mrlokans/studyhub/internal/http"
	"github.com/mrlokans/studyhub/internal/logging"
	"github.com/mrlokans/studyhub/internal/scheduler"
	"github.com/mrlokans/studyhub/internal/services"
	"github.com/mrlokans/studyhub/internal/tasks"
	"github.com/mrlokans/studyhub/internal/tutoring"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired application graph. The CLI reuses it without serving HTTP.
type App struct {
	Config            *config.Config
	Log               *logrus.Logger
	DB                *database.Database
	Audit             *audit.Service
	Guard             *auth.TokenGuard
	Accounts          *auth.Service
	Users             *services.Users
	Collections       *services.Collections
	Subjects          *services.Subjects
	Questions         *services.Questions
	Conversations     *services.Conversations
	GuidedStudy       *tutoring.GuidedStudy
	QuestionGenerator *tutoring.QuestionGenerator
}

// Build opens the database and wires repositories, services and orchestrators.
func Build(cfg *config.Config, log *logrus.Logger) (*App, error) {
	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	userRepo := users.NewRepository(db.DB)
	collectionRepo := collections.NewRepository(db.DB)
	subjectRepo := subjects.NewRepository(db.DB)
	questionRepo := questions.NewRepository(db.DB)
	conversationRepo := conversations.NewRepository(db.DB)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB), log)

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret, err = auth.GenerateSecret()
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		log.Warn("AUTH_JWT_SECRET is not set, generated a per-process secret (tokens will not survive a restart)")
	}
	guard := auth.NewTokenGuard([]byte(secret), cfg.Auth.TokenExpiry)
	accounts := auth.NewService(userRepo, guard, cfg.Auth)

	model := ai.NewClient(cfg.AI, log)

	return &App{
		Config:        cfg,
		Log:           log,
		DB:            db,
		Audit:         auditService,
		Guard:         guard,
		Accounts:      accounts,
		Users:         services.NewUsers(userRepo, accounts, auditService, cfg.Auth.BcryptCost, log),
		Collections:   services.NewCollections(collectionRepo, auditService, log),
		Subjects:      services.NewSubjects(subjectRepo, collectionRepo, auditService, log),
		Questions:     services.NewQuestions(questionRepo, subjectRepo, log),
		Conversations: services.NewConversations(conversationRepo, log),
		GuidedStudy:   tutoring.NewGuidedStudy(subjectRepo, conversationRepo, model, auditService, log),
		QuestionGenerator: tutoring.NewQuestionGenerator(
			subjectRepo,
			conversationRepo,
			tutoring.NewTxQuestionWriter(db.DB),
			model,
			auditService,
			log,
		),
	}, nil
}

// Close flushes pending audit writes and closes the database.
func (a *App) Close() {
	a.Audit.Wait()
	if err := a.DB.Close(); err != nil {
		a.Log.WithError(err).Error("Error closing database")
	}
}

func Serve(router *gin.Engine, cfg *config.Config, log logrus.FieldLogger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	log.WithField("timeout", timeout).Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}

	// Stop background work after in-flight requests drain
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("Server exiting")
	return nil
}

func Run(cfg *config.Config, version string) error {
	log := logging.New(cfg.Log)
	log.WithField("version", version).Info("Starting StudyHub")

	app, err := Build(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfg.AI.APIKey == "" {
		log.Warn("GEMINI_KEY is not set, AI endpoints will fail until it is configured")
	}

	// Task queue
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		if cfg.Database.Driver != "" && cfg.Database.Driver != config.DriverSQLite {
			log.Warn("Task queue keeps its own SQLite file next to DATABASE_PATH")
		}
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromSettings(cfg.Tasks), log)
		if err != nil {
			return fmt.Errorf("initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.WithError(err).Error("Error closing task client")
			}
		}()

		taskClient.Register(
			tasks.NewGenerateQuestionsQueue(app.QuestionGenerator, log),
			tasks.NewCleanupAuditEventsQueue(app.Audit, log),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)
	}

	// Audit retention
	cleanup := auditCleanupJob(app.Audit, taskClient, cfg.Audit.RetentionDays)
	auditScheduler := scheduler.NewAuditCleanupScheduler(cfg.Audit.CleanupSchedule, cleanup, log)
	if err := auditScheduler.Start(context.Background()); err != nil {
		log.WithError(err).Error("Audit cleanup scheduler disabled")
	}

	limiter := auth.NewRateLimiter(auth.DefaultRateLimitConfig())

	routerCfg := http_controllers.RouterConfig{
		Database:          app.DB,
		Logger:            log,
		Version:           version,
		TokenGuard:        app.Guard,
		Accounts:          app.Accounts,
		RateLimiter:       limiter,
		LoginAudit:        app.Audit,
		AuditTrail:        app.Audit,
		Users:             app.Users,
		Collections:       app.Collections,
		Subjects:          app.Subjects,
		Questions:         app.Questions,
		Conversations:     app.Conversations,
		GuidedStudy:       app.GuidedStudy,
		QuestionGenerator: app.QuestionGenerator,
		MaxUploadSize:     cfg.Upload.MaxFileSize,
	}
	// A nil *tasks.Client must not become a non-nil interface
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		auditScheduler.Stop()
		limiter.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, log, onShutdown)
}

// auditCleanupJob enqueues retention cleanup when the task queue runs and
// deletes inline otherwise.
func auditCleanupJob(cleaner tasks.AuditEventCleaner, taskClient *tasks.Client, retentionDays int) scheduler.Job {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	if taskClient != nil {
		return func(ctx context.Context) error {
			_, err := taskClient.Enqueue(ctx, tasks.CleanupAuditEventsTask{RetentionDays: retentionDays})
			return err
		}
	}
	return func(ctx context.Context) error {
		_, err := cleaner.DeleteOldEvents(time.Duration(retentionDays) * 24 * time.Hour)
		return err
	}
}
