package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a success-envelope response with the given status. Extra
// key/value pairs are merged into the envelope next to the success flag,
// so callers control the payload key (resume, resumes, data, ...).
func JSON(c *gin.Context, status int, body gin.H) {
	out := gin.H{"success": true}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(status, out)
}

// OK writes a 200 OK success envelope.
func OK(c *gin.Context, body gin.H) {
	JSON(c, http.StatusOK, body)
}

// Created writes a 201 Created success envelope.
func Created(c *gin.Context, body gin.H) {
	JSON(c, http.StatusCreated, body)
}
