// Package httpapi exposes the account operations as a JSON HTTP API.
// Errors are converted to a uniform {success, message} shape at this
// boundary; raw storage errors never reach the caller.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guluwater/officetools-server/internal/logging"
	"github.com/guluwater/officetools-server/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address        string
	users          *users.Service
	logger         logging.Logger
	requestTimeout time.Duration
}

func NewServer(a string, l logging.Logger, us *users.Service, requestTimeout time.Duration) (*Server, error) {
	return &Server{
		address:        a,
		logger:         l.With("module", "http_server"),
		users:          us,
		requestTimeout: requestTimeout,
	}, nil
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.requestLog(), s.timeout())

	r.GET("/health", s.Health)

	api := r.Group("/api")
	{
		api.POST("/register", s.Register)
		api.POST("/login", s.Login)
		api.GET("/users", s.ListUsers)
	}

	return r
}

func (s *Server) Run(ctx context.Context) error {

	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
