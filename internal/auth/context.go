package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
)

// UserID returns the authenticated caller's id. It is set by the bearer
// middleware and is zero on unauthenticated routes.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}

// SetUserID records the authenticated caller on the Gin context.
func SetUserID(c *gin.Context, id int64) {
	c.Set(CtxUserID, id)
}
