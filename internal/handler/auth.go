package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/lathees-dev/Budget-App/internal/models"
	"github.com/lathees-dev/Budget-App/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost matches what the accounts in production were hashed with.
const bcryptCost = 10

// AuthHandler serves signup, login, logout and the current-user lookup.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewAuthHandler(db *gorm.DB, jwtSecret string) *AuthHandler {
	return &AuthHandler{DB: db, JWTSecret: jwtSecret}
}

// userJSON is the identity projection returned to clients.
// The password hash never appears here.
func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = util.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		util.Fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid email format")
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Fail(c, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		log.Printf("signup: check email: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to create account")
		return
	}
	if count > 0 {
		util.Fail(c, http.StatusConflict, "User with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Printf("signup: hash password: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		log.Printf("signup: create user: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID)
	if err != nil {
		log.Printf("signup: generate token: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to create account")
		return
	}
	util.SetAuthCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    userJSON(&user),
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	req.Email = util.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		util.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a wrong password: never reveal which was off
			util.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		} else {
			log.Printf("login: load user: %v", err)
			util.Fail(c, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID)
	if err != nil {
		log.Printf("login: generate token: %v", err)
		util.Fail(c, http.StatusInternalServerError, "Failed to login")
		return
	}
	util.SetAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userJSON(&user),
	})
}

// Logout clears the session cookie. It works with or without a valid
// session, so it is registered outside the auth middleware.
func (h *AuthHandler) Logout(c *gin.Context) {
	util.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CurrentUser returns the authenticated identity (requires AuthMiddleware).
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}
