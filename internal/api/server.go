package api

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/fakeshop/internal/logger"
	"github.com/Rana718/fakeshop/internal/metrics"
	"github.com/Rana718/fakeshop/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Reader is the read-only view of the store the API serves.
type Reader interface {
	Products(ctx context.Context, filter types.ProductFilter) ([]types.Product, error)
	Users(ctx context.Context, filter types.UserFilter) ([]types.User, error)
	Orders(ctx context.Context, filter types.OrderFilter) ([]types.OrderLine, error)
	Counts(ctx context.Context) (types.Counts, error)
}

type Options struct {
	Port int
	// Cache is optional; nil disables response caching.
	Cache    Cache
	CacheTTL time.Duration
}

type Server struct {
	app      *fiber.App
	store    Reader
	cache    Cache
	cacheTTL time.Duration
	metrics  *metrics.Registry
	log      *logger.Logger
	port     int
}

func NewServer(store Reader, opts Options, reg *metrics.Registry, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}

	app := fiber.New(fiber.Config{
		AppName:               "fakeshop",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:      app,
		store:    store,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		metrics:  reg,
		log:      log.With("component", "API"),
		port:     opts.Port,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	s.app.Get("/products", s.cached(s.handleProducts)...)
	s.app.Get("/users", s.cached(s.handleUsers)...)
	s.app.Get("/orders", s.cached(s.handleOrders)...)
	s.app.Get("/stats", s.cached(s.handleStats)...)
}

func (s *Server) cached(h fiber.Handler) []fiber.Handler {
	if s.cache == nil {
		return []fiber.Handler{h}
	}
	return []fiber.Handler{s.cacheMiddleware, h}
}

// App exposes the fiber app for in-process requests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("API listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
