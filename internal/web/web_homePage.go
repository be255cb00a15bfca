package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-hello/internal/config"
)

// homePage answers the root URL with the fixed greeting
func (s *WebServer) homePage(c *gin.Context) {
	c.String(http.StatusOK, config.DefaultGreeting)
}
