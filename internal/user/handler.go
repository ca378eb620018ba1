// File: internal/user/handler.go
package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"onboarding_backend/internal/auth"
	"onboarding_backend/internal/common"
	"onboarding_backend/internal/middleware"
	"onboarding_backend/internal/onboarding"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes mounts the user endpoints on router. Every route requires an identity.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, identityMW gin.HandlerFunc) {
	userGroup := router.Group("/user", identityMW)
	{
		userGroup.POST("", h.create)
		userGroup.GET("/me", h.getMe)
	}
}

func (h *Handler) create(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req onboarding.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create profile: invalid request body", zap.Error(err))
		common.RespondWithError(c, bindError(err))
		return
	}

	profile, err := h.service.CreateProfile(c.Request.Context(), identity, req)
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			common.RespondWithError(c, err)
			return
		}
		// ErrorHandler logs the cause with the request id and answers with a generic 500.
		_ = c.Error(err).SetMeta(gin.H{"identityID": identity.ID})
		return
	}
	c.JSON(http.StatusOK, ToProfileResponse(profile))
}

func (h *Handler) getMe(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	resp := MeResponse{Identity: toIdentityResponse(identity)}
	profile, err := h.service.GetProfile(c.Request.Context(), identity.ID)
	switch {
	case err == nil:
		pr := ToProfileResponse(profile)
		resp.Onboarded = true
		resp.Profile = &pr
	case errors.Is(err, common.ErrNotFound):
	default:
		_ = c.Error(err).SetMeta(gin.H{"identityID": identity.ID})
		return
	}
	common.RespondOK(c, resp)
}

func toIdentityResponse(id *auth.Identity) IdentityResponse {
	return IdentityResponse{
		ID:        id.ID,
		Email:     id.Email,
		FirstName: id.FirstName,
		LastName:  id.LastName,
	}
}

// bindError maps a body that is not valid JSON to 400 BAD_REQUEST, and a well-formed body whose
// fields have the wrong JSON type to the same validation response the schema produces.
func bindError(err error) *common.APIError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		return common.NewValidationAPIError([]onboarding.FieldError{
			{Field: field, Message: onboarding.FieldMessage(field)},
		})
	}
	return common.ErrBadRequest.WithMessage("Request body must be a JSON object.")
}
