package http

import (
	"fmt"
	"io"
	"log/slog"

	"ordersd/internal/auth/scopes"
	"ordersd/internal/config"
	"ordersd/internal/domain"
	"ordersd/internal/obs"
	"ordersd/internal/problem"
	"ordersd/internal/usecase"
	"ordersd/internal/validate"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg config.Config
	r   *gin.Engine

	orders        *usecase.OrderService
	authenticator domain.Authenticator
	authorizer    *scopes.Authorizer
	validator     *validate.Validator
	logger        *slog.Logger
}

type ServerDeps struct {
	Orders        *usecase.OrderService
	Authenticator domain.Authenticator
	Logger        *slog.Logger
}

func NewServer(cfg config.Config, deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	s := &Server{
		cfg:           cfg,
		r:             r,
		orders:        deps.Orders,
		authenticator: deps.Authenticator,
		authorizer:    scopes.NewAuthorizer(),
		validator:     validate.New(),
		logger:        logger,
	}
	r.Use(obs.RequestLogger(logger))
	// Panics anywhere in the pipeline become a generic internal_error
	// problem; internal detail never reaches the client.
	r.Use(gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		logger.Error("panic recovered", "error", fmt.Sprint(err), "path", c.Request.URL.Path)
		problem.Write(c, domain.Internal(""))
	}))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.r.GET("/healthz", s.health)

	orders := s.r.Group("/orders")
	orders.POST("", s.requireScopes("orders.write"), s.createOrder)
	orders.GET("", s.requireScopes("orders.read"), s.listOrders)
	orders.GET("/:id", s.requireScopes("orders.read"), s.getOrder)
	orders.PATCH("/:id", s.requireScopes("orders.write"), s.updateOrder)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.r
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}
