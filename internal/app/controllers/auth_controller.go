// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/app/services"
	"github.com/dkuznetsov/awardhub/internal/middleware"
	"github.com/dkuznetsov/awardhub/internal/pkg/auth"
)

// RefreshCookieName is the cookie carrying the refresh token
const RefreshCookieName = "refreshToken"

// AuthController handles authentication related operations
type AuthController struct {
	authService  *services.AuthService
	jwtService   *auth.JWTService
	secureCookie bool
	logger       zerolog.Logger
}

// NewAuthController creates a new AuthController. secureCookie marks the
// refresh cookie Secure, which production mode should enable.
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService, secureCookie bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:  authService,
		jwtService:   jwtService,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Register handles account registration
// @Summary Register a new account
// @Description Creates a new account and issues a token pair. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Login or email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("login", req.Login).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setRefreshCookie(ctx, result.RefreshToken)

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Success:     true,
		AccessToken: result.AccessToken,
		Login:       result.User.Login,
		Email:       result.User.Email,
		Role:        string(result.User.Role),
	})
}

// Login handles account login
// @Summary Log in
// @Description Authenticates by login or email and issues a fresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login payload"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setRefreshCookie(ctx, result.RefreshToken)

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Success:     true,
		AccessToken: result.AccessToken,
		Login:       result.User.Login,
		Email:       result.User.Email,
		Role:        string(result.User.Role),
	})
}

// RefreshToken rotates the token pair bound to the refresh cookie
// @Summary Refresh the token pair
// @Description Reads the refresh cookie, rotates both tokens and resets the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} dto.ErrorResponse "Missing, unknown or invalid refresh token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	refreshToken, err := ctx.Cookie(RefreshCookieName)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Refresh token cookie missing")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.authService.RefreshTokens(ctx.Request.Context(), refreshToken)
	if err != nil {
		c.clearRefreshCookie(ctx)
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setRefreshCookie(ctx, result.RefreshToken)

	ctx.JSON(http.StatusOK, dto.RefreshResponse{
		Success:     true,
		AccessToken: result.AccessToken,
	})
}

// Logout clears the stored refresh token and the cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.clearRefreshCookie(ctx)

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Logged out"})
}

// CheckAuth echoes the authenticated identity
// @Summary Check authentication
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CheckAuthResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/check [get]
func (c *AuthController) CheckAuth(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CheckAuthResponse{
		Success: true,
		User: dto.AuthUser{
			ID:    user.ID,
			Login: user.Login,
			Email: user.Email,
			Role:  string(user.Role),
		},
	})
}

func (c *AuthController) setRefreshCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(RefreshCookieName, token, c.jwtService.RefreshTokenMaxAge(), "/", "", c.secureCookie, true)
}

func (c *AuthController) clearRefreshCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(RefreshCookieName, "", -1, "/", "", c.secureCookie, true)
}
