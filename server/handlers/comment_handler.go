package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/arcadia-social/socialfeed-backend/model"
	"github.com/arcadia-social/socialfeed-backend/server/middlewares"
)

type addCommentRequest struct {
	ArticleId   string `json:"articleId"`
	Description string `json:"description"`
}

// AddComment persists a comment and appends its id to the article's ordered
// comment list. The two writes are independent single-document operations.
func (h *Handler) AddComment(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if len([]rune(req.Description)) > model.MaxCommentLength {
		failure(c, http.StatusInternalServerError, "comment is longer than the maximum allowed length (500)")
		return
	}
	comment := model.Comment{
		Id:          uuid.New().String(),
		UserID:      claims.UserId,
		Description: req.Description,
	}
	if err := h.DB.Create(&comment).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.DB.Model(&model.Article{}).Where("id = ?", req.ArticleId).
		Update("comments", gorm.Expr("array_append(comments, ?)", comment.Id)).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, http.StatusOK, "Comment has been created")
}

// GetCommentsByArticle returns the resolved comment documents of one article
// in stored order.
func (h *Handler) GetCommentsByArticle(c *gin.Context) {
	var article model.Article
	if err := h.DB.Where("id = ?", c.Param("ArticleId")).First(&article).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	comments, err := resolveComments(h.DB, article.Comments)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   statusSuccess,
		"comments": comments,
	})
}

// resolveComments fetches the referenced comments and restores the article's
// insertion order, dropping ids whose comment row no longer exists.
func resolveComments(db *gorm.DB, ids pq.StringArray) ([]model.Comment, error) {
	comments := []model.Comment{}
	if len(ids) == 0 {
		return comments, nil
	}
	var fetched []model.Comment
	if err := db.Where("id IN ?", []string(ids)).Find(&fetched).Error; err != nil {
		return nil, err
	}
	byId := map[string]model.Comment{}
	for idx := range fetched {
		byId[fetched[idx].Id] = fetched[idx]
	}
	for _, id := range ids {
		if comment, ok := byId[id]; ok {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}
