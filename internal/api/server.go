package api

import (
	"fmt"
	"net/http"

	"recipebox/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server wraps the REST API server
type Server struct {
	handler *Handler
	router  *gin.Engine
}

// NewServer creates a new API server
func NewServer(db *gorm.DB, sessions *session.Store) *Server {
	handler := NewHandler(db, sessions)

	// Use gin.New() instead of gin.Default() so we control the logger
	router := gin.New()

	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		// Skip logging for health checks (load balancers poll it)
		if param.Path == "/health" {
			return ""
		}
		return fmt.Sprintf("[%s] %s %s %d %s %s \"%s\" %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.ClientIP,
			param.Method,
			param.StatusCode,
			param.Latency,
			param.Path,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	router.Use(gin.Recovery())

	// CORS middleware. The client is a cookie-bearing browser, so the
	// origin is echoed back instead of using a wildcard (wildcards are
	// rejected when credentials are allowed).
	router.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", handler.Health)

	// Public auth endpoints (no session required)
	router.POST("/signup", handler.Signup)
	router.POST("/login", handler.Login)
	router.GET("/check_session", handler.CheckSession)

	// Logout is deliberately outside the protected group: clearing an
	// absent session is a no-op, not an error
	router.DELETE("/logout", handler.Logout)

	// Protected recipe endpoints (require an active session)
	protected := router.Group("")
	protected.Use(RequireSession(sessions))
	{
		protected.GET("/recipes", handler.ListRecipes)
		protected.POST("/recipes", handler.CreateRecipe)
	}

	return &Server{
		handler: handler,
		router:  router,
	}
}

// GetRouter returns the router
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
