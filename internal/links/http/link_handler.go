// Package http provides HTTP handlers for the secure-link lifecycle: issuing
// links for regulatory briefings, resolving tokens, and revoking links early.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regwatch/securelink/internal/httputil"
	"github.com/regwatch/securelink/internal/links/http/dto"
	linksUseCase "github.com/regwatch/securelink/internal/links/usecase"
	customValidation "github.com/regwatch/securelink/internal/validation"
)

// LinkHandler handles HTTP requests for secure-link operations.
type LinkHandler struct {
	linkUseCase      linksUseCase.LinkUseCase
	defaultTTL       time.Duration
	defaultSingleUse bool
	logger           *slog.Logger
}

// NewLinkHandler creates a new link handler. defaultTTL and defaultSingleUse
// apply when the issue request leaves those fields unset.
func NewLinkHandler(
	linkUseCase linksUseCase.LinkUseCase,
	defaultTTL time.Duration,
	defaultSingleUse bool,
	logger *slog.Logger,
) *LinkHandler {
	return &LinkHandler{
		linkUseCase:      linkUseCase,
		defaultTTL:       defaultTTL,
		defaultSingleUse: defaultSingleUse,
		logger:           logger,
	}
}

// GenerateHandler issues a new secure link for a regulatory briefing.
// POST /v1/voice-calls/generate-link
// Returns 201 Created with the plain token, the landing page link, and the expiry.
func (h *LinkHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateLinkRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ttl := h.defaultTTL
	if req.ExpiresInMinutes != nil {
		ttl = time.Duration(*req.ExpiresInMinutes) * time.Minute
	}
	singleUse := h.defaultSingleUse
	if req.SingleUse != nil {
		singleUse = *req.SingleUse
	}

	issued, err := h.linkUseCase.Issue(c.Request.Context(), req.Payload, ttl, singleUse)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssuedLinkToResponse(issued))
}

// ResolveHandler exchanges a token for its briefing, consuming single-use links.
// GET /v1/voice-calls/payload/:token
// Returns 200 OK with the payload, 404 for unknown tokens, 410 for expired or
// consumed links.
func (h *LinkHandler) ResolveHandler(c *gin.Context) {
	token := c.Param("token")
	if err := customValidation.Token.Validate(token); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	payload, err := h.linkUseCase.Resolve(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPayloadToResponse(payload))
}

// RevokeHandler invalidates a link before its natural expiry.
// DELETE /v1/voice-calls/token/:token
// Returns 204 No Content; revoking an unknown token also succeeds.
func (h *LinkHandler) RevokeHandler(c *gin.Context) {
	token := c.Param("token")
	if err := customValidation.Token.Validate(token); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.linkUseCase.Revoke(c.Request.Context(), token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
