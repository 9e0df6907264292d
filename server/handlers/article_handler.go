package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/arcadia-social/socialfeed-backend/model"
	"github.com/arcadia-social/socialfeed-backend/server/middlewares"
)

type articleRequest struct {
	Description string `json:"description"`
	ImgUrl      string `json:"imgurl"`
}

// CreateArticle persists a new article owned by the caller.
func (h *Handler) CreateArticle(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	article := model.Article{
		Id:          uuid.New().String(),
		UserID:      claims.UserId,
		Description: req.Description,
		ImgUrl:      req.ImgUrl,
		Likes:       pq.StringArray{},
		Comments:    pq.StringArray{},
	}
	if err := h.DB.Create(&article).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, http.StatusOK, "article has been created")
}

// UpdateArticle lets the owner edit an article. Only description and imgurl
// are copyable from the input; empty values are skipped, like the reference
// allow-list did.
func (h *Handler) UpdateArticle(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	var article model.Article
	if err := h.DB.Where("id = ?", c.Param("id")).First(&article).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if claims.UserId != article.UserID {
		failure(c, http.StatusUnauthorized, "you are not authorized")
		return
	}
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ImgUrl != "" {
		updates["imgurl"] = req.ImgUrl
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&model.Article{}).Where("id = ?", article.Id).
			Updates(updates).Error; err != nil {
			failure(c, http.StatusInternalServerError, err.Error())
			return
		}
	}
	success(c, http.StatusOK, "article has been updated")
}

// DeleteArticle removes an article if the caller owns it or is an admin.
// The comment cleanup deletes every comment authored by the caller across
// all articles, not just this one — the reference system's behavior,
// reproduced as-is.
func (h *Handler) DeleteArticle(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	var article model.Article
	if err := h.DB.Where("id = ?", c.Param("id")).First(&article).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if claims.UserId != article.UserID && claims.Role != model.RoleAdmin {
		failure(c, http.StatusUnauthorized, "you are not authorized")
		return
	}
	if err := h.DB.Where("user_id = ?", claims.UserId).Delete(&model.Comment{}).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.DB.Where("id = ?", article.Id).Delete(&model.Article{}).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, http.StatusOK, "article has been deleted")
}

// LikeArticle toggles the caller's like on an article.
func (h *Handler) LikeArticle(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	var article model.Article
	if err := h.DB.Where("id = ?", c.Param("id")).First(&article).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !containsId(article.Likes, claims.UserId) {
		if err := h.DB.Model(&model.Article{}).Where("id = ?", article.Id).
			Update("likes", gorm.Expr("array_append(likes, ?)", claims.UserId)).Error; err != nil {
			failure(c, http.StatusInternalServerError, err.Error())
			return
		}
		success(c, http.StatusOK, "the article has been liked")
		return
	}
	if err := h.DB.Model(&model.Article{}).Where("id = ?", article.Id).
		Update("likes", gorm.Expr("array_remove(likes, ?)", claims.UserId)).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, http.StatusOK, "the article has been disliked")
}

// GetTimeline returns the caller's merged feed. Page is 1-based; the limit
// applies per source, and the returned "limit" field is the merged result
// length.
func (h *Handler) GetTimeline(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = 1
	}
	articles, err := getTimelineArticles(h.DB, claims.UserId, page, limit)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   statusSuccess,
		"Articles": articles,
		"limit":    len(articles),
	})
}

// GetArticlesUser lists all articles of the user named in the path.
func (h *Handler) GetArticlesUser(c *gin.Context) {
	var user model.User
	if err := h.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	var articles []model.Article
	if err := h.DB.Where("user_id = ?", user.Id).Find(&articles).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetArticle returns one article with its comments resolved.
func (h *Handler) GetArticle(c *gin.Context) {
	var article model.Article
	if err := h.DB.Where("id = ?", c.Param("id")).First(&article).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	comments, err := resolveComments(h.DB, article.Comments)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, model.ArticleWithComments{
		Article:  article,
		Comments: comments,
	})
}
