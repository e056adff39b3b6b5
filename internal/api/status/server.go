package status

import (
	"context"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Info данные для /version
type Info struct {
	Version  string    `json:"version"`
	Provider string    `json:"analyzer"`
	Started  time.Time `json:"started"`
}

// Server служебный HTTP-сервер: проверка живости, версия, метрики
type Server struct {
	srv *http.Server
}

// NewRouter собирает маршруты служебного сервера
func NewRouter(info Info, sessions func(ctx context.Context) (int, error)) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if sessions != nil {
			n, err := sessions(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})
				return
			}
			body["sessions"] = n
		}
		c.JSON(http.StatusOK, body)
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// NewServer создаёт сервер на addr
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start запускает сервер в фоне
func (s *Server) Start() {
	go func() {
		log.WithField("addr", s.srv.Addr).Info("status server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("status server stopped")
		}
	}()
}

// Shutdown останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	return errors.Wrap(s.srv.Shutdown(ctx), "shutdown status server")
}
