package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/vidmux/vidmux/key"
	"github.com/vidmux/vidmux/log"
)

// Server timeouts. The write timeout stays generous: the stream endpoint keeps
// the response open for the whole pipeline run.
const (
	defaultReadTimeout = 30 * time.Second
	defaultIdleTimeout = 120 * time.Second
	shutdownGrace      = 10 * time.Second
)

// Server wraps the HTTP server around the gin engine.
type Server struct {
	http *http.Server
}

// NewServer builds the gin engine with middleware and routes and binds it to
// the configured address.
func NewServer(handler *Handler) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORS(viper.GetStringSlice(key.ServerCORSAllowOrigins)))
	SetupRoutes(router, handler)

	addr := fmt.Sprintf("%s:%d", viper.GetString(key.ServerHost), viper.GetInt(key.ServerPort))
	return &Server{
		http: &http.Server{
			Addr:        addr,
			Handler:     router,
			ReadTimeout: defaultReadTimeout,
			IdleTimeout: defaultIdleTimeout,
		},
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		log.Infof("http server listening on %s", s.http.Addr)
		errs <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
