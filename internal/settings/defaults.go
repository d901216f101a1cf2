package settings

import (
	"time"

	"github.com/MKhiriev/go-chat-core/models"
)

// DefaultLanguage is used when a profile has no language set.
const DefaultLanguage = "en"

// Defaults returns a fully populated settings document. lastReset is the
// start of the first translation quota window.
func Defaults(lastReset time.Time) models.UserSettings {
	return models.UserSettings{
		Theme: models.ThemeSettings{
			Mode:           models.ThemeLight,
			Primary:        "#0084ff",
			Secondary:      "#f0f2f5",
			ChatBackground: "#ffffff",
		},
		Language: DefaultLanguage,
		Notifications: models.NotificationSettings{
			Messages: models.MessageNotifications{
				MessagePreview: true,
				MessageSound:   true,
				MessageLED:     true,
			},
			Groups: models.GroupNotifications{
				GroupPreview: true,
				GroupSound:   true,
				GroupVibrate: true,
			},
			Calls: models.CallNotifications{
				CallRingtone: true,
				CallVibrate:  true,
				MissedCalls:  true,
				Ringtone:     "default",
			},
			Volume: 80,
		},
		Privacy: models.PrivacySettings{
			ShowOnlineStatus: true,
			ShowLastSeen:     true,
			ShowReadReceipts: true,
		},
		Accessibility: models.AccessibilitySettings{
			FontSize:     models.FontMedium,
			HighContrast: false,
		},
		Translation: models.TranslationSettings{
			UsageCount: 0,
			LastReset:  lastReset.UTC(),
		},
	}
}
