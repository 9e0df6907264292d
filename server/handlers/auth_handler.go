package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arcadia-social/socialfeed-backend/model"
	Logger "github.com/arcadia-social/socialfeed-backend/utils/log"
)

// bcryptCost matches the reference configuration's salt rounds.
const bcryptCost = 10

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

// Signup creates a new account. Username and email uniqueness is enforced by
// the store; a violation surfaces as a generic failure like any other store
// error. The password hash never leaves this handler.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	// Required-field validation the document store used to enforce; an empty
	// string would otherwise satisfy the relational not-null constraint.
	if req.Username == "" || req.Email == "" || req.Password == "" {
		failure(c, http.StatusInternalServerError, "username, email and password are required")
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	user := model.User{
		Id:             uuid.New().String(),
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hashed),
		ProfilePicture: model.DefaultProfilePicture,
		Followers:      pq.StringArray{},
		Followings:     pq.StringArray{},
		Role:           model.RoleUser,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "user saved successfully",
		"data":    gin.H{"user": user.Username},
	})
}

// Login checks the credentials, issues a fresh access/refresh pair and
// persists the refresh token on the user row. Overwriting the stored token
// implicitly revokes any prior session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	var user model.User
	res := h.DB.Where("username = ?", req.Username).First(&user)
	if res.Error != nil && !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		failure(c, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected != 1 {
		failure(c, http.StatusUnauthorized, "user does not exist")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		failure(c, http.StatusUnauthorized, "password is incorrect")
		return
	}
	accessToken, err := h.Token.IssueAccessToken(user.Username, user.Role, user.Id)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	refreshToken, err := h.Token.IssueRefreshToken(user.Username, user.Role, user.Id)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.DB.Model(&model.User{}).Where("id = ?", user.Id).
		Update("refresh_token", refreshToken).Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	// The user document minus the stored refresh token, per the reference
	// contract. RefreshToken is excluded by its json tag.
	c.JSON(http.StatusOK, gin.H{
		"status":       statusSuccess,
		"message":      "logged in successfully",
		"data":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout clears the stored refresh token of whichever user holds the
// presented one. A token that matches no user still logs out successfully;
// only an empty token is rejected.
func (h *Handler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if req.RefreshToken == "" {
		failure(c, http.StatusBadRequest, "logout error")
		return
	}
	if err := h.DB.Model(&model.User{}).Where("refresh_token = ?", req.RefreshToken).
		Update("refresh_token", "").Error; err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	success(c, http.StatusOK, "You've been logged out")
}

// Refresh exchanges a live refresh token for a new access/refresh pair. The
// presented token must match the stored one exactly, which makes rotation
// one-time-use: a rotated-away token no longer matches and is rejected.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if req.Token == "" {
		failure(c, http.StatusUnauthorized, "You are not authenticated!")
		return
	}
	var user model.User
	res := h.DB.Where("refresh_token = ?", req.Token).First(&user)
	if res.RowsAffected != 1 {
		// The reference behavior answers 200 with a failure body here.
		failure(c, http.StatusOK, "Refresh token is not valid!")
		return
	}
	claims, err := h.Token.VerifyRefresh(req.Token)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	newAccessToken, err := h.Token.IssueAccessToken(claims.Username, claims.Role, claims.UserId)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	newRefreshToken, err := h.Token.IssueRefreshToken(claims.Username, claims.Role, claims.UserId)
	if err != nil {
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.DB.Model(&model.User{}).Where("refresh_token = ?", req.Token).
		Update("refresh_token", newRefreshToken).Error; err != nil {
		Logger.Errorf("failed to rotate refresh token for user %s: %v", user.Id, err)
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  newAccessToken,
		"refreshToken": newRefreshToken,
	})
}
