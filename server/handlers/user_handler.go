package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/arcadia-social/socialfeed-backend/model"
	"github.com/arcadia-social/socialfeed-backend/server/middlewares"
)

const defaultSearchLimit = 10

type updateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Description    string `json:"description"`
	ProfilePicture string `json:"profilePicture"`
	Gender         string `json:"gender"`
}

// GetUser returns the public view of a single user.
func (h *Handler) GetUser(c *gin.Context) {
	var user model.User
	if err := h.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, user.PublicView())
}

// UpdateUser applies the allow-listed profile fields to the caller's own
// account (admins may edit anyone). Empty fields are skipped; a new password
// is re-hashed before it is stored.
func (h *Handler) UpdateUser(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	if claims.UserId != c.Param("id") && claims.Role != model.RoleAdmin {
		failure(c, http.StatusForbidden, "you can only update your own account")
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.ProfilePicture != "" {
		updates["profile_picture"] = req.ProfilePicture
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			failure(c, http.StatusInternalServerError, err.Error())
			return
		}
		updates["password"] = string(hashed)
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&model.User{}).Where("id = ?", c.Param("id")).
			Updates(updates).Error; err != nil {
			failure(c, http.StatusInternalServerError, err.Error())
			return
		}
	}
	var user model.User
	if err := h.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, user.PublicView())
}

// SearchUsers matches usernames by case-insensitive substring.
func (h *Handler) SearchUsers(c *gin.Context) {
	search := c.Query("search")
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultSearchLimit
	}
	pattern := "%" + search + "%"
	var total int64
	if err := h.DB.Model(&model.User{}).Where("username ILIKE ?", pattern).
		Count(&total).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	var users []model.User
	if err := h.DB.Where("username ILIKE ?", pattern).
		Order("username").Limit(limit).Find(&users).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]*model.UserView, 0, len(users))
	for idx := range users {
		views = append(views, users[idx].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     statusSuccess,
		"users":      views,
		"totalUsers": total,
		"limit":      limit,
	})
}

// Follow adds the caller as a follower of :username.
func (h *Handler) Follow(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	switch err := followUser(h.DB, claims.UserId, c.Param("username")); err {
	case nil:
		success(c, http.StatusOK, "user has been followed")
	case ErrAlreadyFollowing, ErrSelfFollow:
		failure(c, http.StatusForbidden, err.Error())
	default:
		failure(c, http.StatusInternalServerError, err.Error())
	}
}

// Unfollow removes the caller from :username's followers. Unfollowing a user
// that was never followed answers with a success-shaped body on a 400, the
// reference system's quirk.
func (h *Handler) Unfollow(c *gin.Context) {
	claims, _ := middlewares.GetIdentity(c)
	switch err := unfollowUser(h.DB, claims.UserId, c.Param("username")); err {
	case nil:
		success(c, http.StatusOK, "user has been unfollowed")
	case ErrNotFollowing:
		success(c, http.StatusBadRequest, err.Error())
	default:
		failure(c, http.StatusInternalServerError, err.Error())
	}
}
