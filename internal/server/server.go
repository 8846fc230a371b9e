// Package server собирает HTTP API: маршруты, middleware цепочки и
// жизненный цикл http.Server
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/apistarter/internal/auth"
	"github.com/iudanet/apistarter/internal/config"
	"github.com/iudanet/apistarter/internal/server/handlers"
	"github.com/iudanet/apistarter/internal/server/middleware"
	"github.com/iudanet/apistarter/internal/server/storage"
)

// Server представляет HTTP сервер приложения
type Server struct {
	logger   *slog.Logger
	httpSrv  *http.Server
	limiters []*middleware.RateLimiter
}

// Options задает зависимости для сборки сервера
type Options struct {
	Logger      *slog.Logger
	Config      *config.Config
	AuthService *auth.Service
	Tokens      *auth.TokenService
	Users       storage.UserStorage
	Products    storage.ProductStorage
	Version     string
}

// New создает сервер с настроенным роутером и middleware
func New(opts Options) *Server {
	logger := opts.Logger
	cfg := opts.Config

	authHandler := handlers.NewAuthHandler(logger, opts.AuthService)
	usersHandler := handlers.NewUsersHandler(logger, opts.Users)
	productsHandler := handlers.NewProductsHandler(logger, opts.Products)
	healthHandler := handlers.NewHealthHandler(logger, opts.Version)

	// Guard middleware: user gate для каталога, admin gate для пользователей
	requireUser := middleware.RequireUser(logger, opts.Tokens)
	requireAdmin := middleware.RequireAdmin(logger, opts.Tokens)

	// Отдельные, более жесткие лимиты на login и register
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow, logger)
	registerLimiter := middleware.NewRateLimiter(cfg.RegisterRateLimit, cfg.RegisterRateWindow, logger)
	globalLimiter := middleware.NewRateLimiter(cfg.GlobalRateLimit, cfg.GlobalRateWindow, logger)

	mux := http.NewServeMux()

	mux.Handle("POST /api/register", registerLimiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/login", loginLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/refresh-token", authHandler.Refresh)

	mux.Handle("GET /api/products", requireUser(http.HandlerFunc(productsHandler.List)))
	mux.Handle("GET /api/product/{id}", requireUser(http.HandlerFunc(productsHandler.Get)))

	mux.Handle("GET /api/users", requireAdmin(http.HandlerFunc(usersHandler.List)))
	mux.Handle("GET /api/user/{id}", requireAdmin(http.HandlerFunc(usersHandler.Get)))

	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Внешняя цепочка: recovery -> logging -> CORS -> глобальный rate limit
	var handler http.Handler = mux
	handler = globalLimiter.Middleware(handler)
	handler = middleware.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger: logger,
		httpSrv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		limiters: []*middleware.RateLimiter{loginLimiter, registerLimiter, globalLimiter},
	}
}

// Handler возвращает корневой http.Handler (используется в тестах)
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run запускает сервер и блокируется до ошибки или закрытия
func (s *Server) Run() error {
	s.logger.Info("HTTP server listening", "addr", s.httpSrv.Addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown останавливает сервер с graceful завершением запросов
func (s *Server) Shutdown(ctx context.Context) error {
	for _, l := range s.limiters {
		l.Stop()
	}
	return s.httpSrv.Shutdown(ctx)
}
