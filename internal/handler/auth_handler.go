package handler

import (
	"errors"
	"net/http"
	"time"

	"emergency-bed-booking/internal/repository"
	"emergency-bed-booking/internal/service"
	"emergency-bed-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type CreateStaffRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	HospitalCode string `json:"hospital_code" binding:"required"`
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	setRefreshCookie(c, response.RefreshToken)

	utils.SuccessResponse(c, gin.H{
		"access_token": response.AccessToken,
		"user":         response.User,
	})
}

// Signup registers a new patient account
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response, err := h.authService.RegisterPatient(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	setRefreshCookie(c, response.RefreshToken)

	utils.SuccessResponse(c, gin.H{
		"access_token": response.AccessToken,
		"user":         response.User,
	})
}

// CreateStaff creates a hospital staff account (admin only)
func (h *AuthHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	adminID, _ := c.Get("userID")

	user, err := h.authService.CreateStaff(req.Email, req.Password, req.HospitalCode, adminID.(uint))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrHospitalNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrDuplicateEmail):
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create staff account")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Staff account created successfully",
		"user":    user,
	})
}

// Refresh generates a new access token from refresh token
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(refreshToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"access_token": accessToken,
	})
}

// Logout revokes the refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	if err := h.authService.Logout(refreshToken); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	// Clear the cookie
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)

	utils.MessageResponse(c, "Logged out successfully")
}

func setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(
		"refresh_token",               // name
		token,                         // value
		int(7*24*time.Hour.Seconds()), // maxAge in seconds (7 days)
		"/",                           // path
		"",                            // domain (empty means current domain)
		false,                         // secure (set to true in production with HTTPS)
		true,                          // httpOnly
	)
}
