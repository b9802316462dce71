package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IssueVisitorID mints a server-issued anonymous visitor identifier.
// The client persists it and attaches it to rating, comment and play
// requests; there is no account behind it.
func IssueVisitorID(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{
		"visitor_id": uuid.NewString(),
		"issued_at":  time.Now().UTC().Format(time.RFC3339),
	})
}
