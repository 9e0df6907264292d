package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arcadia-social/socialfeed-backend/server/auth"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// It serves as dependency injection for the HTTP layer, add any dependencies
// you require here.

type Handler struct {
	DB    *gorm.DB
	Token *auth.TokenService
}

func New(db *gorm.DB, token *auth.TokenService) *Handler {
	return &Handler{DB: db, Token: token}
}

func failure(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  statusFailure,
		"message": message,
	})
}

func success(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  statusSuccess,
		"message": message,
	})
}
