package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/regwatch/securelink/internal/validation"
)

// ImpactLevel classifies how severely a regulatory change affects the recipient.
type ImpactLevel string

// Supported impact levels.
const (
	ImpactLevelLow      ImpactLevel = "low"
	ImpactLevelMedium   ImpactLevel = "medium"
	ImpactLevelHigh     ImpactLevel = "high"
	ImpactLevelCritical ImpactLevel = "critical"
)

// IsValid reports whether the impact level is one of the supported values.
func (i ImpactLevel) IsValid() bool {
	switch i {
	case ImpactLevelLow, ImpactLevelMedium, ImpactLevelHigh, ImpactLevelCritical:
		return true
	default:
		return false
	}
}

// RegulatoryUpdate is the briefing delivered when a link token resolves.
// The fields are fixed at issuance; the link service itself never reads them,
// it only carries the document to the voice-call landing page.
type RegulatoryUpdate struct {
	UserID          string      `json:"user_id"`
	UserName        string      `json:"user_name"`
	CompanyName     string      `json:"company_name"`
	RegulationType  string      `json:"regulation_type"`
	RegulationTitle string      `json:"regulation_title"`
	EffectiveDate   string      `json:"effective_date"`
	Deadline        string      `json:"deadline"`
	Summary         string      `json:"summary"`
	ActionRequired  string      `json:"action_required"`
	ImpactLevel     ImpactLevel `json:"impact_level"`
	ReferenceURL    string      `json:"reference_url,omitempty"`
}

// Validate checks that the briefing carries every mandatory field.
func (r RegulatoryUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.UserName, validation.Required, customValidation.NotBlank),
		validation.Field(&r.CompanyName, validation.Required, customValidation.NotBlank),
		validation.Field(&r.RegulationType, validation.Required),
		validation.Field(&r.RegulationTitle, validation.Required, customValidation.NotBlank),
		validation.Field(&r.EffectiveDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Deadline, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Summary, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ActionRequired, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ImpactLevel, validation.Required, validation.By(validateImpactLevel)),
	)
}

// validateImpactLevel rejects values outside the supported impact levels.
func validateImpactLevel(value interface{}) error {
	level, ok := value.(ImpactLevel)
	if !ok || !level.IsValid() {
		return validation.NewError(
			"validation_impact_level",
			"impact level must be one of: low, medium, high, critical",
		)
	}
	return nil
}
