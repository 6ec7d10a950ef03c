package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soko_market/internal/middleware"
	"soko_market/internal/models"
	"soko_market/internal/services"
)

// AuthController handles signup and login; tokens carry the user id and role.
type AuthController struct {
	users     *services.UserService
	jwtSecret string
}

func NewAuthController(users *services.UserService, jwtSecret string) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret}
}

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Signup registers a new account and returns a token for it.
func (ctl *AuthController) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role == "" {
		input.Role = string(models.RoleCustomer)
	}

	user, err := ctl.users.Create(services.UserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	token, err := middleware.GenerateToken(ctl.jwtSecret, user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login verifies credentials and issues a token.
func (ctl *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.VerifyCredentials(body.Email, body.Password)
	if err != nil {
		// Wrong email and wrong password read the same to the caller.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(ctl.jwtSecret, user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
