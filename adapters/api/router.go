package api

import (
	"log"
	"net/http"

	httpapi "reglookup/internal/api"
	"reglookup/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-Id"

// Server is the JSON-only lookup API built on gin
type Server struct {
	router *gin.Engine
	finder ports.RecordFinder
	source ports.TableSource
}

// NewServer creates the API server. The gin mode is process-wide and is
// expected to be set by the caller before this runs.
func NewServer(finder ports.RecordFinder, source ports.TableSource) *Server {
	router := gin.New()
	// keys may contain an encoded '/'
	router.UseRawPath = true
	router.UnescapePathValues = true

	s := &Server{
		router: router,
		finder: finder,
		source: source,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	log.Printf("Starting lookup API on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/api/user/", s.handleLookup)
	s.router.GET("/api/user/:registrationNo", s.handleLookup)
}

// handleLookup resolves the registration number in the path.
// An empty segment is a legal, if unusual, key.
func (s *Server) handleLookup(c *gin.Context) {
	key := c.Param("registrationNo")

	result, err := s.finder.Lookup(c.Request.Context(), key)
	if err != nil {
		log.Printf("[API] request %s: lookup failed: %v", c.GetString("requestID"), err)
	}
	status, body := httpapi.LookupResponse(result, err)
	c.JSON(status, body)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, httpapi.HealthResponse{Status: "ok", Source: s.source.Describe()})
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
