// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the papers API and the front-end assets over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/a10y/papers-list/internal/cache"
	"github.com/a10y/papers-list/internal/kvstore"
	"github.com/a10y/papers-list/internal/metrics"
	"github.com/a10y/papers-list/internal/papers"
	"github.com/a10y/papers-list/internal/zotero"
	"github.com/a10y/papers-list/pkg/types"
)

// Deps are the process-wide collaborators shared by all requests.
type Deps struct {
	// Store backs the cache. Required.
	Store kvstore.Store

	// HTTPClient is used for upstream calls. Nil uses the zotero default.
	HTTPClient *http.Client

	// Limiter paces upstream calls. Nil disables pacing.
	Limiter *rate.Limiter

	Logger zerolog.Logger

	// Metrics receives cache events. Nil disables cache metrics.
	Metrics *metrics.Metrics

	// Registry is exposed at /metrics when cfg.Server.Metrics is set.
	Registry *prometheus.Registry
}

// Server is the HTTP front of papers-list.
type Server struct {
	cfg  types.Config
	deps Deps
	app  *fiber.App
}

// New builds the Fiber app with middleware and routes.
func New(cfg types.Config, deps Deps) *Server {
	s := &Server{cfg: cfg, deps: deps}

	app := fiber.New(fiber.Config{
		AppName:               "papers-list",
		UnescapePath:          true,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(accessLog(deps.Logger))

	origins := cfg.Server.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	if cfg.Server.Metrics && deps.Registry != nil {
		prom := fiberprometheus.NewWithRegistry(deps.Registry, "papers-list", "papers_list", "http", nil)
		app.Use(prom.Middleware)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/papers", s.listPapers)
	api.Get("/papers/:id", s.getPaper)

	if dir := cfg.Server.FrontendDir; dir != "" {
		app.Static("/", dir, fiber.Static{Compress: true})
		// SPA fallback: unknown non-API paths get index.html.
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			return c.SendFile(filepath.Join(dir, "index.html"))
		})
	}

	s.app = app
	return s
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// service builds the per-request papers service.
func (s *Server) service() *papers.Service {
	clientOpts := []zotero.ClientOption{
		zotero.WithHTTPClient(s.deps.HTTPClient),
		zotero.WithLimiter(s.deps.Limiter),
		zotero.WithLogger(s.deps.Logger),
		zotero.WithUserAgent(s.cfg.HTTP.UserAgent),
	}
	cacheOpts := []cache.Option{
		cache.WithTTL(s.cfg.Cache.TTL),
		cache.WithLogger(s.deps.Logger),
	}
	if s.deps.Metrics != nil {
		cacheOpts = append(cacheOpts, cache.WithObserver(s.deps.Metrics))
	}
	return papers.NewService(s.deps.Store, zotero.NewClient(s.cfg.Zotero, clientOpts...), cacheOpts...)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(errorBody{Error: msg})
}
