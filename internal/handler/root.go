package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const indexPage = `<p>Nothing here yet.</p><br /><h2>Todo:</h2><small>Add OpenAPI Docs</small>`

// Index serves the placeholder landing page.
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}
