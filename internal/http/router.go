package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Route groups are registered only for the dependencies present in cfg,
// so tests can build a router around a single controller.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(Recovery(log))
	router.Use(RequestLogger(log))
	router.Use(auth.SecurityHeadersMiddleware())
	router.NoMethod(methodNotAllowed)
	router.NoRoute(notFound)

	maxUpload := cfg.MaxUploadSize
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadSize
	}
	router.MaxMultipartMemory = maxUpload

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Registration and login
	if cfg.Users != nil && cfg.Accounts != nil {
		accounts := NewAccountsController(cfg.Users, cfg.Accounts, cfg.RateLimiter, cfg.LoginAudit)
		router.POST("/api/register", accounts.Register)
		router.POST("/api/login", accounts.Login)
	}

	if cfg.TokenGuard == nil {
		log.Warn("No token guard configured, protected routes are disabled")
		return router
	}
	requireToken := auth.NewMiddleware(cfg.TokenGuard, log).RequireToken()

	data := router.Group("/api/data", requireToken)
	if cfg.Users != nil {
		users := NewUsersController(cfg.Users)
		data.GET("/user", users.Get)
		data.PUT("/user", users.Update)
		data.DELETE("/user", users.Delete)
	}
	if cfg.AuditTrail != nil {
		data.GET("/audit", NewAuditController(cfg.AuditTrail).List)
	}
	if cfg.Collections != nil {
		collections := NewCollectionsController(cfg.Collections)
		data.GET("/collection", collections.Get)
		data.POST("/collection", collections.Create)
		data.PUT("/collection", collections.Update)
		data.DELETE("/collection", collections.Delete)
	}
	if cfg.Subjects != nil {
		subjects := NewSubjectsController(cfg.Subjects, maxUpload, log)
		data.GET("/subject", subjects.Get)
		data.POST("/subject", subjects.Create)
		data.PUT("/subject", subjects.Update)
		data.DELETE("/subject", subjects.Delete)

		if cfg.Questions != nil && cfg.Conversations != nil {
			study := NewStudyController(cfg.Subjects, cfg.Questions, cfg.Conversations)
			data.GET("/question", study.ListQuestions)
			data.POST("/question", study.CreateQuestion)
			data.DELETE("/question", study.DeleteQuestion)
			data.GET("/conversation", study.ListConversation)
			data.POST("/conversation", study.CreateConversation)
		}
	}

	if cfg.GuidedStudy != nil && cfg.QuestionGenerator != nil && cfg.Subjects != nil {
		ai := NewAIController(cfg.GuidedStudy, cfg.QuestionGenerator, cfg.Subjects, cfg.TaskClient, log)
		aiGroup := router.Group("/api/ai", requireToken)
		aiGroup.POST("/guided-study", ai.GuidedStudy)
		aiGroup.POST("/questions", ai.GenerateQuestions)
	}

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient, log)
		router.GET("/api/tasks/:id", requireToken, tasksController.GetTaskStatus)
	}

	return router
}
