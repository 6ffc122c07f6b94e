package handler

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/response"
)

// PageHandler serves the single-page admin shell.
type PageHandler struct {
	webDir string
}

// NewPageHandler constructs the handler for the given web root.
func NewPageHandler(webDir string) *PageHandler {
	return &PageHandler{webDir: webDir}
}

// Shell serves index.html; client-side routing picks the page.
func (h *PageHandler) Shell(c *gin.Context) {
	index := filepath.Join(h.webDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "Admin interface is not installed"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.File(index)
}

// Login serves login.html, falling back to the shell.
func (h *PageHandler) Login(c *gin.Context) {
	login := filepath.Join(h.webDir, "login.html")
	if _, err := os.Stat(login); err == nil {
		c.File(login)
		return
	}
	h.Shell(c)
}

// NoRoute answers unknown paths with the failure envelope.
func NoRoute(c *gin.Context) {
	response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "Endpoint not found"))
}

// NoMethod answers 405 with the failure envelope.
func NoMethod(c *gin.Context) {
	response.Error(c, appErrors.Clone(appErrors.ErrMethodNotAllowed, "Method not allowed"))
}
