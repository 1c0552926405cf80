package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	api "github.com/mind-engage/quizmint/internal/api/http"
	"github.com/mind-engage/quizmint/internal/auth"
	"github.com/mind-engage/quizmint/internal/config"
	"github.com/mind-engage/quizmint/internal/db"
	"github.com/mind-engage/quizmint/internal/genai"
	"github.com/mind-engage/quizmint/internal/logger"
	"github.com/mind-engage/quizmint/internal/quiz"
	"github.com/mind-engage/quizmint/internal/user"
)

func main() {
	cfg := config.FromEnv()

	log, err := logger.New(string(cfg.Mode))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", "err", err)
	}
	users := user.NewSQLStore(dbh)

	// --- Quiz store (TTL-enforcing) ---
	var quizzes quiz.Store
	switch cfg.QuizStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("redis ping failed", "addr", cfg.RedisAddr, "err", err)
		}
		quizzes = quiz.NewRedisStore(rdb, cfg.QuizTTL)
	default:
		sqlStore := quiz.NewSQLStore(dbh, cfg.QuizTTL, log)
		sqlStore.StartJanitor(context.Background(), time.Minute)
		quizzes = sqlStore
	}

	// --- Services ---
	authSvc := auth.NewService(cfg.AuthHMACSecret)
	gen := genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout, log)
	quizSvc := quiz.NewService(quizzes, gen, users, log)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/register", api.RegisterHandler(users))
	r.Post("/login", api.LoginHandler(users, authSvc))
	r.Post("/quiz/generate-question", api.GenerateQuestionHandler(quizSvc))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))
		pr.Get("/me", api.MeHandler(users))
		pr.Post("/quiz/generate", api.GenerateQuizHandler(quizSvc))
		pr.Post("/quiz/submit", api.SubmitQuizHandler(quizSvc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver, "quiz_store", cfg.QuizStore)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server exited", "err", err)
	}
}
