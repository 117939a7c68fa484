// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	linksDomain "github.com/regwatch/securelink/internal/links/domain"
	linksUseCase "github.com/regwatch/securelink/internal/links/usecase"
)

// GenerateLinkResponse represents an issued link in API responses. Token is
// the plain bearer token and appears here exactly once; it is never stored
// and cannot be recovered afterwards.
type GenerateLinkResponse struct {
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapIssuedLinkToResponse converts an issued link to its API response.
func MapIssuedLinkToResponse(issued *linksUseCase.IssuedLink) GenerateLinkResponse {
	return GenerateLinkResponse{
		Token:     issued.Token,
		Link:      issued.Link,
		ExpiresAt: issued.ExpiresAt,
	}
}

// ResolveLinkResponse wraps the briefing returned when a token resolves.
type ResolveLinkResponse struct {
	Payload *linksDomain.RegulatoryUpdate `json:"payload"`
}

// MapPayloadToResponse converts a resolved briefing to its API response.
func MapPayloadToResponse(payload *linksDomain.RegulatoryUpdate) ResolveLinkResponse {
	return ResolveLinkResponse{Payload: payload}
}
