// Package forms implements the selection semantics shared by every
// structured clinical form: single-select (radio) fields, multi-select
// (checkbox) fields with mutual-exclusion groups, and the "others"
// escape hatch that gates an attached free-text value.
package forms

import (
	"encoding/json"
	"strings"
)

// Others is the sentinel option label. When present in a selection it
// stands in for an attached free-text value supplied by the clinician.
const Others = "others"

// List is the stored value of a multi-select field. Historical chart
// documents persisted some of these as bare strings; decoding routes
// every shape through Normalize so a legacy scalar loads as a
// singleton selection instead of failing.
type List []string

func (l *List) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = Normalize(v)
	return nil
}

// ExclusionMap declares, per exclusive label, the labels it is
// incompatible with. Selecting an exclusive label collapses the field
// to that single label; selecting anything else clears every exclusive
// label. This models "normal/none" being incompatible with any listed
// abnormality while abnormalities may coexist.
type ExclusionMap map[string][]string

// Normalize coerces a stored selection value into a label list.
// Historical records persisted a bare string where the model now
// expects a list, and unsaved fields come back as nil; both shapes
// must read as valid selections.
func Normalize(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		if val == nil {
			return []string{}
		}
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if val == "" {
			return []string{}
		}
		return []string{val}
	default:
		return []string{}
	}
}

// NormalizeList is Normalize restricted to the common case of a
// possibly-nil slice, keeping call sites on typed fields terse.
func NormalizeList(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// Toggle flips label in the current selection and applies the
// mutual-exclusion rule:
//
//   - deselecting removes only the label itself, nothing cascades;
//   - selecting an exclusive label makes it the entire selection;
//   - selecting any other label (the sentinel included) removes every
//     currently-selected exclusive label.
func Toggle(current []string, label string, excl ExclusionMap) []string {
	values := Normalize(current)

	if contains(values, label) {
		return remove(values, label)
	}

	if _, exclusive := excl[label]; exclusive {
		return []string{label}
	}

	next := append(append([]string{}, values...), label)
	for key := range excl {
		next = remove(next, key)
	}
	return next
}

// DisplayValue renders a selection for human-readable output: each
// occurrence of the sentinel is substituted with otherText, or with
// fallback when the free text is blank, and labels are joined with
// ", ". An empty selection renders as the empty string; callers decide
// what an unset field should say.
func DisplayValue(values []string, otherText, fallback string) string {
	values = Normalize(values)
	if len(values) == 0 {
		return ""
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == Others {
			if strings.TrimSpace(otherText) != "" {
				out = append(out, otherText)
			} else {
				out = append(out, fallback)
			}
			continue
		}
		out = append(out, v)
	}
	return strings.Join(out, ", ")
}

// DisplayScalar renders a single-select value, substituting the
// attached free text (or fallback) for the sentinel.
func DisplayScalar(value, otherText, fallback string) string {
	if value == Others {
		if strings.TrimSpace(otherText) != "" {
			return otherText
		}
		return fallback
	}
	return value
}

func contains(values []string, label string) bool {
	for _, v := range values {
		if v == label {
			return true
		}
	}
	return false
}

func remove(values []string, label string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != label {
			out = append(out, v)
		}
	}
	return out
}
