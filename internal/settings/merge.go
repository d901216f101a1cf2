// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

// Merge returns base with patch deep-merged into it. Nested objects are
// merged key by key, any other value in patch replaces the one in base and
// nil values in patch are ignored. Neither argument is modified.
func Merge(base, patch map[string]any) map[string]any {
	out := copyMap(base)
	if out == nil {
		out = make(map[string]any, len(patch))
	}

	for k, pv := range patch {
		if pv == nil {
			continue
		}

		pm, patchIsMap := pv.(map[string]any)
		bm, baseIsMap := out[k].(map[string]any)
		if patchIsMap && baseIsMap {
			out[k] = Merge(bm, pm)
			continue
		}

		out[k] = copyValue(pv)
	}

	return out
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		s := make([]any, len(t))
		for i := range t {
			s[i] = copyValue(t[i])
		}
		return s
	default:
		return v
	}
}
