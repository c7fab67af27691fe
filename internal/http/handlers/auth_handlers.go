package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastianBuritica/logistics-ai/domain"
	"github.com/SebastianBuritica/logistics-ai/internal/navigation"
	"github.com/SebastianBuritica/logistics-ai/internal/session"
	"github.com/SebastianBuritica/logistics-ai/internal/validation"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	store  *session.Store
	orch   *navigation.Orchestrator
	perms  domain.PermissionService
	tokens domain.TokenIntrospector
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(store *session.Store, orch *navigation.Orchestrator, perms domain.PermissionService, tokens domain.TokenIntrospector) *AuthHandlers {
	return &AuthHandlers{store: store, orch: orch, perms: perms, tokens: tokens}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	AgreeToTerms bool   `json:"agree_to_terms"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me,omitempty"`
}

// OAuthRequest represents an OAuth flow initiation request
type OAuthRequest struct {
	Provider   string `json:"provider" binding:"required"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// ResetPasswordRequest represents a password recovery request
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	FullName            string              `json:"full_name,omitempty"`
	Phone               string              `json:"phone,omitempty"`
	Email               string              `json:"email,omitempty"`
	Password            string              `json:"password,omitempty"`
	OnboardingCompleted *bool               `json:"onboarding_completed,omitempty"`
	Metadata            domain.UserMetadata `json:"metadata,omitempty"`
}

// statusFor maps the normalized error taxonomy to HTTP status codes.
func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeInvalidCredentials, domain.ErrCodeNotAuthenticated:
		return http.StatusUnauthorized
	case domain.ErrCodeEmailNotVerified:
		return http.StatusForbidden
	case domain.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domain.ErrCodeEmailAlreadyExists:
		return http.StatusConflict
	case domain.ErrCodeWeakPassword:
		return http.StatusBadRequest
	case domain.ErrCodeNetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err *domain.AuthError) {
	c.JSON(statusFor(err.Code), gin.H{"error": err})
}

func navPayload(nav *navigation.Navigation) gin.H {
	if nav == nil {
		return nil
	}
	payload := gin.H{"path": nav.Path}
	if nav.External {
		payload["external"] = true
	}
	if len(nav.State) > 0 {
		payload["state"] = nav.State
	}
	return payload
}

// Register handles account creation. Without a password the flow falls back
// to a magic-link email.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.AgreeToTerms {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Debes aceptar los términos y condiciones"})
		return
	}
	if err := validation.Email(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != "" {
		if err := validation.Password(req.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.FullName != "" {
		if err := validation.Name(req.FullName); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := validation.Phone(req.Phone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metadata := domain.UserMetadata{}
	if req.FullName != "" {
		metadata[domain.MetaFullName] = req.FullName
	}
	if req.Phone != "" {
		metadata[domain.MetaPhone] = req.Phone
	}

	result, nav := h.orch.SignUp(c.Request.Context(), domain.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		Metadata: metadata,
	})
	if !result.OK() {
		fail(c, result.Err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":     gin.H{"email": req.Email},
		"navigate": navPayload(nav),
	})
}

// Login handles password sign-in. An explicit returnUrl query parameter wins
// over the stored one-shot redirect.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Email(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, nav := h.orch.SignIn(c.Request.Context(), domain.SignInParams{
		Email:    req.Email,
		Password: req.Password,
	}, c.Query("returnUrl"))
	if !result.OK() {
		fail(c, result.Err)
		return
	}

	payload := gin.H{}
	if s, ok := result.Data.(*domain.Session); ok && s != nil {
		payload["access_token"] = s.AccessToken
		payload["token_type"] = s.TokenType
		payload["expires_at"] = s.ExpiresAt
		if s.User != nil {
			payload["user"] = gin.H{"id": s.User.ID, "email": s.User.Email}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     payload,
		"navigate": navPayload(nav),
	})
}

// OAuth initiates an OAuth flow and returns the external provider URL.
func (h *AuthHandlers) OAuth(c *gin.Context) {
	var req OAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, nav := h.orch.SignInWithOAuth(c.Request.Context(), req.Provider, req.RedirectTo)
	if !result.OK() {
		fail(c, result.Err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"navigate": navPayload(nav)})
}

// Logout signs the current session out.
func (h *AuthHandlers) Logout(c *gin.Context) {
	result, nav := h.orch.SignOut(c.Request.Context())
	if !result.OK() {
		fail(c, result.Err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"navigate": navPayload(nav)})
}

// ResetPassword requests a recovery email. The response is identical for
// known and unknown addresses.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.Email(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, nav := h.orch.ResetPassword(c.Request.Context(), req.Email)
	if !result.OK() {
		fail(c, result.Err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"navigate": navPayload(nav)})
}

// ResendVerification re-sends the verification email to the current user.
func (h *AuthHandlers) ResendVerification(c *gin.Context) {
	result := h.store.ResendVerification(c.Request.Context())
	if !result.OK() {
		fail(c, result.Err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"email": result.Data}})
}

// UpdateProfile applies a partial profile update. An update completing
// onboarding navigates onward to company setup.
func (h *AuthHandlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FullName != "" {
		if err := validation.Name(req.FullName); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := validation.Phone(req.Phone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != "" {
		if err := validation.Password(req.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	metadata := domain.UserMetadata{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	if req.FullName != "" {
		metadata[domain.MetaFullName] = req.FullName
	}
	if req.Phone != "" {
		metadata[domain.MetaPhone] = req.Phone
	}
	if req.OnboardingCompleted != nil {
		metadata[domain.MetaOnboardingCompleted] = *req.OnboardingCompleted
	}

	result, nav := h.orch.UpdateProfile(c.Request.Context(), domain.UpdateProfileParams{
		Email:    req.Email,
		Password: req.Password,
		Metadata: metadata,
	})
	if !result.OK() {
		fail(c, result.Err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     result.Data,
		"navigate": navPayload(nav),
	})
}

// UploadAvatar stores the uploaded image and patches the profile with its
// public URL.
func (h *AuthHandlers) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selecciona una imagen para subir"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pudimos leer la imagen"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	result := h.store.UploadAvatar(c.Request.Context(), file.Filename, src, contentType)
	if !result.OK() {
		fail(c, result.Err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"avatar_url": result.Data}})
}

// ClearError dismisses the current error slot.
func (h *AuthHandlers) ClearError(c *gin.Context) {
	h.store.ClearError()
	c.Status(http.StatusNoContent)
}

// Me returns the derived view of the current identity: display name,
// initials, routing step and permissions, all computed on read.
func (h *AuthHandlers) Me(c *gin.Context) {
	state := h.store.Snapshot()
	if state.User == nil {
		fail(c, &domain.AuthError{
			Code:    domain.ErrCodeNotAuthenticated,
			Message: "No has iniciado sesión",
		})
		return
	}

	user := state.User
	role := domain.Role(user)
	permissions, err := h.perms.Permissions(role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load permissions"})
		return
	}

	companyID, companyName := user.Company()
	payload := gin.H{
		"id":                     user.ID,
		"email":                  user.Email,
		"phone":                  user.Phone,
		"display_name":           domain.DisplayName(user),
		"initials":               domain.Initials(user),
		"avatar_url":             user.MetaString(domain.MetaAvatarURL),
		"role":                   role,
		"permissions":            permissions,
		"step":                   state.Step(),
		"stage":                  state.Stage().String(),
		"is_email_verified":      state.IsEmailVerified,
		"is_onboarding_complete": state.IsOnboardingComplete,
		"is_ready":               state.IsUserReady(),
	}
	if companyID != "" {
		payload["company"] = gin.H{"id": companyID, "name": companyName}
	}

	if state.Session != nil {
		if claims, err := h.tokens.Claims(state.Session.AccessToken); err == nil {
			payload["session"] = gin.H{"expires_at": claims.ExpiresAt}
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// Permission answers a single permission check for the current user's role.
func (h *AuthHandlers) Permission(c *gin.Context) {
	state := h.store.Snapshot()
	if state.User == nil {
		fail(c, &domain.AuthError{
			Code:    domain.ErrCodeNotAuthenticated,
			Message: "No has iniciado sesión",
		})
		return
	}

	name := c.Param("name")
	allowed, err := h.perms.HasPermission(domain.Role(state.User), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permission"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"permission": name, "allowed": allowed}})
}
