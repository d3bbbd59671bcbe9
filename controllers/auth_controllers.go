package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/skva/kasse/models"
	"github.com/skva/kasse/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login exchanges username/password for a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("username and password required"))
		return
	}

	var user models.User
	if err := ac.DB.Where("username = ? AND is_active = 1", input.Username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("login: %s (role=%s)", user.Username, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  user.Role,
	})
}

// InitAdmin bootstraps the very first admin account. Refused as soon as any
// user exists.
func (ac *AuthController) InitAdmin(c *gin.Context) {
	var count int64
	if err := ac.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusForbidden, errors.New("admin already exists"))
		return
	}

	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("username and password required"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: string(hashed),
		Role:         "admin",
		IsActive:     1,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("init-admin: created %s", user.Username)
	utils.RespondJSON(c, http.StatusCreated, "Admin created", gin.H{"token": token})
}

// Logout revokes the caller's token until it expires on its own.
func (ac *AuthController) Logout(c *gin.Context) {
	tokenString := c.GetString("token")
	if tokenString == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no token in request"))
		return
	}

	expiry := time.Now().Add(12 * time.Hour)
	if claims, err := utils.ParseToken(tokenString); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(tokenString, expiry)

	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}
