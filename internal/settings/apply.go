package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/validators"
	"github.com/MKhiriev/go-chat-core/models"
)

// Server-managed translation keys. Clients cannot write them.
var managedKeys = map[string][]string{
	"translation": {"usageCount", "lastReset"},
}

// Apply merges patch into current and validates the result. The returned
// document is what must be stored; on error current stays authoritative.
// Unknown keys and values of the wrong JSON type are reported as
// *validators.ValidationError.
func Apply(ctx context.Context, v validators.Validator, current models.UserSettings, patch models.SettingsPatch) (models.UserSettings, error) {
	base, err := toMap(current)
	if err != nil {
		return models.UserSettings{}, err
	}

	merged, err := json.Marshal(Merge(base, stripManaged(patch)))
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("error encoding merged settings: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(merged))
	dec.DisallowUnknownFields()

	var next models.UserSettings
	if err := dec.Decode(&next); err != nil {
		return models.UserSettings{}, decodeError(err)
	}

	if err := v.Validate(ctx, next); err != nil {
		return models.UserSettings{}, err
	}

	return next, nil
}

// ToPatch converts a full settings document into a patch. Used to replace
// the whole document through the same path as partial updates.
func ToPatch(s models.UserSettings) (models.SettingsPatch, error) {
	m, err := toMap(s)
	if err != nil {
		return nil, err
	}
	return models.SettingsPatch(m), nil
}

func toMap(s models.UserSettings) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	return m, nil
}

func stripManaged(patch models.SettingsPatch) map[string]any {
	out := copyMap(patch)
	for group, keys := range managedKeys {
		sub, ok := out[group].(map[string]any)
		if !ok {
			continue
		}
		for _, k := range keys {
			delete(sub, k)
		}
	}
	return out
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &validators.ValidationError{
			Field:  typeErr.Field,
			Reason: "must be " + typeErr.Type.String(),
		}
	}

	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		return &validators.ValidationError{
			Field:  strings.Trim(strings.TrimPrefix(msg, unknownPrefix), `"`),
			Reason: "unknown setting",
		}
	}

	return &validators.ValidationError{Field: "settings", Reason: err.Error()}
}
