package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-chat-core/models"
	"golang.org/x/text/language"
)

// Field name constants that scope settings validation to one group.
const (
	FieldTheme         = "theme"
	FieldLanguage      = "language"
	FieldNotifications = "notifications"
	FieldPrivacy       = "privacy"
	FieldAccessibility = "accessibility"
	FieldTranslation   = "translation"
)

const (
	minVolume = 0
	maxVolume = 100

	// maxBackgroundLength bounds image URLs used as chat backgrounds.
	maxBackgroundLength = 2048
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// SettingsValidator validates models.UserSettings leaf by leaf.
type SettingsValidator struct {
}

func NewSettingsValidator() Validator {
	return &SettingsValidator{}
}

func (v *SettingsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserSettings:
		return v.validateSettings(value, fields...)
	case *models.UserSettings:
		return v.validateSettings(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *SettingsValidator) validateSettings(s models.UserSettings, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTheme, FieldLanguage, FieldNotifications, FieldPrivacy, FieldAccessibility, FieldTranslation}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldTheme:
			err = validateTheme(s.Theme)
		case FieldLanguage:
			err = validateLanguage("language", s.Language)
		case FieldNotifications:
			if s.Notifications.Volume < minVolume || s.Notifications.Volume > maxVolume {
				err = invalid("notifications.volume", "must be between 0 and 100")
			}
		case FieldPrivacy:
			// booleans only
		case FieldAccessibility:
			switch s.Accessibility.FontSize {
			case models.FontSmall, models.FontMedium, models.FontLarge:
			default:
				err = invalid("accessibility.fontSize", "must be one of small, medium, large")
			}
		case FieldTranslation:
			if s.Translation.UsageCount < 0 {
				err = invalid("translation.usageCount", "must not be negative")
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func validateTheme(t models.ThemeSettings) error {
	switch t.Mode {
	case models.ThemeLight, models.ThemeDark:
	default:
		return invalid("theme.mode", "must be light or dark")
	}

	colors := []struct {
		field string
		value string
	}{
		{"theme.primary", t.Primary},
		{"theme.secondary", t.Secondary},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			return invalid(c.field, "must be a #rgb or #rrggbb color")
		}
	}

	// The chat background is a color, an image URL or a named preset.
	switch bg := strings.TrimSpace(t.ChatBackground); {
	case bg == "":
		return invalid("theme.chatBackground", "must not be empty")
	case len(bg) > maxBackgroundLength:
		return invalid("theme.chatBackground", "is too long")
	}

	return nil
}

func validateLanguage(field, tag string) error {
	if tag == "" {
		return invalid(field, "must not be empty")
	}
	if _, err := language.Parse(tag); err != nil {
		return invalid(field, "is not a valid language tag")
	}
	return nil
}
