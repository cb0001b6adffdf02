package web

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

//go:embed index.html
var page []byte

// NewRouter builds the gin engine with every route registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all the application routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.ShowPage)

	api := r.Group("/api")
	api.GET("/view", h.GetView)
	api.GET("/view/stream", h.StreamView)
	api.GET("/me", h.GetMe)
	api.POST("/events", h.CreateEvent)
	api.DELETE("/events", h.DeleteEvent)
	api.POST("/events/:id/participants", h.JoinEvent)
	api.PUT("/participants/:id", h.UpdateParticipant)
	api.DELETE("/participants/:id", h.RemoveParticipant)
	api.POST("/draw", h.CheckDraw)
}

// ShowPage serves the single page; the view itself comes from /api/view.
func (h *Handler) ShowPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		entry := log.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("requête en échec")
			return
		}
		entry.Debug("requête")
	}
}
