package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/radarjus/newsradar/internal/processor"
)

// NewsProvider is what the HTTP layer needs from the aggregator.
type NewsProvider interface {
	GetNews(ctx context.Context) ([]processor.ProcessedItem, bool, error)
}

type Server struct {
	agg NewsProvider
}

func NewServer(agg NewsProvider) *Server {
	return &Server{agg: agg}
}

// CORSMiddleware mirrors the headers the frontend was built against:
// any origin, preflight answered with 204.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.getNews)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getNews(c *gin.Context) {
	items, cached, err := s.agg.GetNews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	// optional client-side convenience; does not touch the fetch pipeline
	if portal := c.Query("portal"); portal != "" {
		filtered := make([]processor.ProcessedItem, 0, len(items))
		for _, it := range items {
			if it.Portal == portal {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	if items == nil {
		items = []processor.ProcessedItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"cached":  cached,
	})
}
