package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arvind-ks/roomhub/internal/models"
)

// isOwner is the one ownership predicate every guarded mutation uses:
// only the host edits a room, only the author deletes a message. The
// check lives here instead of being restated inline so the rule can't
// drift between handlers.
func isOwner(user *models.User, ownerID uuid.UUID) bool {
	return user != nil && user.ID == ownerID
}

// forbid denies a mutation on someone else's resource. A direct
// plain-text response, deliberately not a redirect: the visitor is
// logged in, they're just not allowed, and bouncing them to the login
// page would suggest otherwise.
func forbid(c *gin.Context) {
	c.String(http.StatusForbidden, "You are not allowed here!")
}

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
}

func serverError(c *gin.Context) {
	c.String(http.StatusInternalServerError, "Something went wrong")
}
