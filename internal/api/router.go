// Package api wires handlers, middleware, and routes for the three platform
// services. Each service gets its own Echo instance with the shared global
// middleware stack and its own authorization policy table.
package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quizmesh/quiz-platform/internal/api/handler"
	"github.com/quizmesh/quiz-platform/internal/api/middleware"
	"github.com/quizmesh/quiz-platform/internal/auth/token"
	"github.com/quizmesh/quiz-platform/internal/core/domain"
	"github.com/quizmesh/quiz-platform/internal/core/ports"
	"github.com/quizmesh/quiz-platform/internal/core/service"
	"github.com/quizmesh/quiz-platform/internal/infrastructure/config"
	mongodb "github.com/quizmesh/quiz-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/quizmesh/quiz-platform/internal/infrastructure/db/redis"
)

// NewAuthRouter builds the identity service. All auth routes are public:
// this service issues tokens, it does not consume them.
func NewAuthRouter(db *mongo.Database, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := newEcho(log)

	userRepo := mongodb.NewUserRepository(db)
	codec := token.NewCodec(cfg.JWT.Secret)
	authService := service.NewAuthService(userRepo, codec, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, log)
	authHandler := handler.NewAuthHandler(authService)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/validate", authHandler.Validate)

	registerOps(e, db, nil)
	return e
}

// NewQuestionRouter builds the question service. The generate/getQuestions/
// getScore endpoints are intentionally public: they are called by the quiz
// service over a private network, not by end users.
func NewQuestionRouter(db *mongo.Database, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := newEcho(log)

	questionRepo := mongodb.NewQuestionRepository(db)
	questionService := service.NewQuestionService(questionRepo, log)
	questionHandler := handler.NewQuestionHandler(questionService)

	codec := token.NewCodec(cfg.JWT.Secret)
	policy := middleware.NewPolicy(
		append(operationalRules(),
			middleware.Rule{Method: http.MethodGet, Pattern: "/question/generate", Public: true},
			middleware.Rule{Method: http.MethodPost, Pattern: "/question/getQuestions", Public: true},
			middleware.Rule{Method: http.MethodPost, Pattern: "/question/getScore", Public: true},
			middleware.Rule{Method: http.MethodPost, Pattern: "/question/addQuestion", Roles: []string{domain.RoleAdmin}},
			middleware.Rule{Method: http.MethodPut, Pattern: "/question/*", Roles: []string{domain.RoleAdmin}},
			middleware.Rule{Method: http.MethodDelete, Pattern: "/question/*", Roles: []string{domain.RoleAdmin}},
			middleware.Rule{Method: http.MethodGet, Pattern: "/question/*", Roles: []string{domain.RoleUser, domain.RoleAdmin}},
		)...,
	)
	e.Use(middleware.Verifier(codec))
	e.Use(policy.Middleware())

	e.GET("/question/allQuestions", questionHandler.ListAll)
	e.GET("/question/category/:category", questionHandler.ListByCategory)
	e.POST("/question/addQuestion", questionHandler.Add)
	e.DELETE("/question/:id", questionHandler.Delete)
	e.GET("/question/generate", questionHandler.Generate)
	e.POST("/question/getQuestions", questionHandler.GetQuestions)
	e.POST("/question/getScore", questionHandler.GetScore)

	registerOps(e, db, nil)
	return e
}

// NewQuizRouter builds the quiz orchestration service. Quiz routes fall
// through to the default policy rule: authenticated, any role.
func NewQuizRouter(db *mongo.Database, rdb *redis.Client, provider ports.QuestionProvider, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := newEcho(log)

	quizRepo := mongodb.NewQuizRepository(db)
	var cache ports.QuestionViewCache
	if rdb != nil {
		cache = redisdb.NewQuestionViewCache(rdb, log)
	}
	quizService := service.NewQuizService(quizRepo, provider, cache, log)
	quizHandler := handler.NewQuizHandler(quizService)

	codec := token.NewCodec(cfg.JWT.Secret)
	policy := middleware.NewPolicy(operationalRules()...)
	e.Use(middleware.Verifier(codec))
	e.Use(policy.Middleware())

	e.POST("/quiz/create", quizHandler.Create)
	e.GET("/quiz/get/:id", quizHandler.Get)
	e.POST("/quiz/submit/:id", quizHandler.Submit)
	e.GET("/quiz/all", quizHandler.List)

	registerOps(e, db, rdb)
	return e
}

// newEcho builds an Echo instance with the global middleware stack shared by
// every service.
func newEcho(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("quizmesh"))

	return e
}

// operationalRules are the public health and metrics routes every service
// exposes.
func operationalRules() []middleware.Rule {
	return []middleware.Rule{
		{Method: http.MethodGet, Pattern: "/health", Public: true},
		{Method: http.MethodGet, Pattern: "/health/ready", Public: true},
		{Method: http.MethodGet, Pattern: "/metrics", Public: true},
	}
}

func registerOps(e *echo.Echo, db *mongo.Database, rdb *redis.Client) {
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
}
