package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcadia-social/socialfeed-backend/server/middlewares"
)

// RegisterRoutes wires the full API surface onto the router. Signup, login,
// logout and refresh are the only routes outside the bearer-token check.
func RegisterRoutes(router *gin.Engine, h *Handler) {
	user := router.Group("/api/user")
	user.POST("/signup", h.Signup)
	user.POST("/login", h.Login)
	user.POST("/logout", h.Logout)
	user.POST("/refresh", h.Refresh)
	user.GET("/search", middlewares.JWT(), h.SearchUsers)
	user.GET("/:id", middlewares.JWT(), h.GetUser)
	user.PUT("/follow/:username", middlewares.JWT(), h.Follow)
	user.PUT("/unfollow/:username", middlewares.JWT(), h.Unfollow)
	user.PUT("/:id", middlewares.JWT(), h.UpdateUser)

	article := router.Group("/api/article", middlewares.JWT())
	article.POST("", h.CreateArticle)
	article.GET("/timeline", h.GetTimeline)
	article.GET("/user/:username", h.GetArticlesUser)
	article.PUT("/like/:id", h.LikeArticle)
	article.PUT("/:id", h.UpdateArticle)
	article.DELETE("/:id", h.DeleteArticle)
	article.GET("/:id", h.GetArticle)

	comment := router.Group("/api/comment", middlewares.JWT())
	comment.POST("", h.AddComment)
	comment.GET("/:ArticleId", h.GetCommentsByArticle)

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, fmt.Sprintf("%s Route %s not found !", c.Request.Method, c.Request.URL.Path))
	})
}
