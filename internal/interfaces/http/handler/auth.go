package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/gita/backend/internal/application/identity"
	"github.com/gita/backend/internal/infrastructure/auth"
	"github.com/gita/backend/internal/interfaces/http/dto"
	"github.com/gita/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles OTP login, the session cookie, and the profile
type AuthHandler struct {
	BaseHandler
	otpService  *appidentity.OTPService
	userService *appidentity.UserService
	cookies     *auth.CookieWriter
	sessions    *middleware.SessionMiddleware
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	otpService *appidentity.OTPService,
	userService *appidentity.UserService,
	cookies *auth.CookieWriter,
	sessions *middleware.SessionMiddleware,
) *AuthHandler {
	return &AuthHandler{
		otpService:  otpService,
		userService: userService,
		cookies:     cookies,
		sessions:    sessions,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/auth")
	group.POST("/send-otp", h.SendOTP)
	group.POST("/verify-otp", h.VerifyOTP)
	group.GET("/me", h.sessions.Optional(), h.Me)
	group.PATCH("/me", h.sessions.Require(), h.UpdateMe)
	group.POST("/logout", h.Logout)
}

// SendOTP issues a one-time code to the given email
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.otpService.Issue(c.Request.Context(), appidentity.IssueOTPInput{
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, SendOTPResponse{
		OKResponse: dto.OKResponse{OK: true},
		Message:    "OTP sent",
		OTPID:      result.OTPID,
		OTP:        result.DevOTP,
	})
}

// VerifyOTP checks the submitted code and logs the user in by setting
// the session cookie
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.otpService.Verify(c.Request.Context(), appidentity.VerifyOTPInput{
		OTPID: req.OTPID,
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.cookies.Write(c, result.Token, result.ExpiresAt)

	h.OK(c, VerifyOTPResponse{
		OKResponse: dto.OKResponse{OK: true},
		Message:    "Verified",
		User:       NewUserPayload(result.User),
	})
}

// Me returns the current user, or a null user for anonymous callers
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.OK(c, UserResponse{
		OKResponse: dto.OKResponse{OK: true},
		User:       NewUserPayload(user),
	})
}

// UpdateMe applies profile changes to the current user
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.userService.UpdateProfile(c.Request.Context(), user.ID, appidentity.UpdateProfileInput{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, UserResponse{
		OKResponse: dto.OKResponse{OK: true},
		User:       NewUserPayload(updated),
	})
}

// Logout clears the session cookie. Logging out an anonymous caller is
// a no-op success.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	h.Message(c, "Logged out")
}
