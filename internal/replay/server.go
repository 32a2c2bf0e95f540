package replay

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server serves recorded fixtures on the backend's routes so the client can
// run without the analysis service.
type Server struct {
	addr   string
	store  *Store
	logger *zap.Logger
	server *http.Server
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a replay server for store.
func NewServer(addr string, store *Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		store:  store,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)

	r.GET("/api/health", s.handleHealth)
	for _, route := range []string{RoutePlot, RouteEnvelopeDb, RouteSpectrogram, RouteSNR, RouteFileURL} {
		r.GET("/api/"+route+"/*key", s.handleFixture(route, false))
	}
	for _, route := range []string{RouteFrequencyResponse, RouteCSD, RouteParameters} {
		r.GET("/api/"+route+"/*key", s.handleFixture(route, true))
	}
	r.POST("/api/upload", s.handleUpload)
	r.GET("/api/signal", s.handleUnsupported)
	r.POST("/api/calculate-ir", s.handleUnsupported)
	return r
}

// Start begins serving on the configured address and returns once the
// listener is bound.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string { return s.addr }

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("replay request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("duration", time.Since(start)))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"fixtures": len(s.store.Fixtures()),
	})
}

func (s *Server) handleFixture(route string, withBands bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			c.JSON(http.StatusNotFound, gin.H{"detail": "File not found"})
			return
		}

		bands := 0
		if withBands {
			raw := c.Query("bands")
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "bands must be a positive integer"})
				return
			}
			bands = n
		}

		body, err := s.store.Lookup(route, key, bands)
		if errors.Is(err, ErrFixtureNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "File not found"})
			return
		}
		if err != nil {
			s.logger.Warn("fixture read failed", zap.String("route", route), zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to read fixture"})
			return
		}
		c.Data(http.StatusOK, "application/json", body)
	}
}

// handleUpload accepts a file and reports the key it would be stored under.
// Nothing is persisted; the key only resolves if fixtures were recorded for it.
func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "missing file field"})
		return
	}
	name := path.Base(fh.Filename)
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"filename": name,
		"path":     "uploads/" + name,
	})
}

func (s *Server) handleUnsupported(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"detail": "not available in replay mode"})
}
