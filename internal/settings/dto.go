package settings

import (
	"spendwise/internal"
)

// UpdateSettingsDTO is a partial settings update. Nil fields are left
// untouched; present fields are validated against the enumerated sets.
type UpdateSettingsDTO struct {
	CurrencySymbol *string `json:"currencySymbol,omitempty"`
	CurrencyFormat *string `json:"currencyFormat,omitempty"`
	Theme          *string `json:"theme,omitempty"`
	EnableAI       *bool   `json:"enableAI,omitempty"`
}

// Validate validates the UpdateSettingsDTO
func (dto UpdateSettingsDTO) Validate() error {
	if dto.CurrencySymbol != nil && *dto.CurrencySymbol == "" {
		return internal.NewValidationFieldError("currencySymbol", "currency symbol cannot be empty", internal.ErrCodeInvalidSettings)
	}
	if dto.CurrencyFormat != nil && *dto.CurrencyFormat != FormatStandard && *dto.CurrencyFormat != FormatSpace {
		return internal.NewValidationFieldError("currencyFormat", "currency format must be 'standard' or 'space'", internal.ErrCodeInvalidSettings)
	}
	if dto.Theme != nil && *dto.Theme != ThemeLight && *dto.Theme != ThemeDark {
		return internal.NewValidationFieldError("theme", "theme must be 'light' or 'dark'", internal.ErrCodeInvalidSettings)
	}
	return nil
}

// apply merges the patch into s and returns the names of changed fields.
func (dto UpdateSettingsDTO) apply(s *Settings) []string {
	var fields []string
	if dto.CurrencySymbol != nil {
		s.CurrencySymbol = *dto.CurrencySymbol
		fields = append(fields, "currencySymbol")
	}
	if dto.CurrencyFormat != nil {
		s.CurrencyFormat = *dto.CurrencyFormat
		fields = append(fields, "currencyFormat")
	}
	if dto.Theme != nil {
		s.Theme = *dto.Theme
		fields = append(fields, "theme")
	}
	if dto.EnableAI != nil {
		s.EnableAI = *dto.EnableAI
		fields = append(fields, "enableAI")
	}
	return fields
}
