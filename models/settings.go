// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ThemeMode selects the light or dark color scheme.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// FontSize is the accessibility font size preset.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// UserSettings is the settings aggregate embedded into every [UserProfile].
// It is not addressable on its own: reads and writes always go through the
// owning profile.
type UserSettings struct {
	Theme         ThemeSettings         `json:"theme"`
	Language      string                `json:"language"`
	Notifications NotificationSettings  `json:"notifications"`
	Privacy       PrivacySettings       `json:"privacy"`
	Accessibility AccessibilitySettings `json:"accessibility"`
	Translation   TranslationSettings   `json:"translation"`
}

type ThemeSettings struct {
	Mode           ThemeMode `json:"mode"`
	Primary        string    `json:"primary"`
	Secondary      string    `json:"secondary"`
	ChatBackground string    `json:"chatBackground"`
}

type NotificationSettings struct {
	Messages MessageNotifications `json:"messages"`
	Groups   GroupNotifications   `json:"groups"`
	Calls    CallNotifications    `json:"calls"`

	// Volume is the global notification volume in the 0..100 range.
	Volume int `json:"volume"`
}

type MessageNotifications struct {
	MessagePreview bool `json:"messagePreview"`
	MessageSound   bool `json:"messageSound"`
	MessageLED     bool `json:"messageLED"`
}

type GroupNotifications struct {
	GroupPreview bool `json:"groupPreview"`
	GroupSound   bool `json:"groupSound"`
	GroupVibrate bool `json:"groupVibrate"`
}

type CallNotifications struct {
	CallRingtone bool   `json:"callRingtone"`
	CallVibrate  bool   `json:"callVibrate"`
	MissedCalls  bool   `json:"missedCalls"`
	Ringtone     string `json:"ringtone"`
}

type PrivacySettings struct {
	ShowOnlineStatus bool `json:"showOnlineStatus"`
	ShowLastSeen     bool `json:"showLastSeen"`
	ShowReadReceipts bool `json:"showReadReceipts"`
}

type AccessibilitySettings struct {
	FontSize     FontSize `json:"fontSize"`
	HighContrast bool     `json:"highContrast"`
}

// TranslationSettings tracks translation quota usage and an optional key the
// user supplied for the translation service.
type TranslationSettings struct {
	// ServiceKey is stored sealed at rest. Read APIs return it masked.
	ServiceKey string    `json:"serviceKey,omitempty"`
	UsageCount int       `json:"usageCount"`
	LastReset  time.Time `json:"lastReset"`
}

// SettingsPatch is a partial settings document. Nested objects are merged key
// by key into the stored settings, see settings.Merge.
type SettingsPatch map[string]any
