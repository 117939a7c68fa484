// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	linksDomain "github.com/regwatch/securelink/internal/links/domain"
)

// GenerateLinkRequest contains the parameters for issuing a new secure link.
// ExpiresInMinutes and SingleUse are optional; the handler applies the
// configured defaults when they are absent.
type GenerateLinkRequest struct {
	Payload          *linksDomain.RegulatoryUpdate `json:"payload"`
	ExpiresInMinutes *int                          `json:"expires_in_minutes"`
	SingleUse        *bool                         `json:"single_use"`
}

// Validate checks the generate link request. Payload field validation is
// delegated to the domain document itself.
func (r *GenerateLinkRequest) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.Payload, validation.Required),
		validation.Field(&r.ExpiresInMinutes, validation.Min(1)),
	); err != nil {
		return err
	}
	return r.Payload.Validate()
}
