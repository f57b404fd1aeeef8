package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Normalize maps an arbitrary decoded JSON object, plus the prior record for
// updates (nil for creation), into a canonical artwork. It is pure apart from
// fresh id generation: no I/O, no failure modes. Invalid numeric input and
// unrecognized statuses fall back silently rather than erroring, matching the
// lenient contract the admin panel relies on.
func Normalize(input map[string]any, existing *Artwork, now time.Time) Artwork {
	if input == nil {
		input = map[string]any{}
	}

	prior := Artwork{Status: StatusAvailable}
	if existing != nil {
		prior = *existing
	}

	art := Artwork{
		TitleUK:       textField(input, "title_uk", prior.TitleUK),
		TitleEN:       textField(input, "title_en", prior.TitleEN),
		TitleDE:       textField(input, "title_de", prior.TitleDE),
		DescriptionUK: textField(input, "description_uk", prior.DescriptionUK),
		DescriptionEN: textField(input, "description_en", prior.DescriptionEN),
		DescriptionDE: textField(input, "description_de", prior.DescriptionDE),
		TechniqueUK:   textField(input, "technique_uk", prior.TechniqueUK),
		TechniqueEN:   textField(input, "technique_en", prior.TechniqueEN),
		TechniqueDE:   textField(input, "technique_de", prior.TechniqueDE),
		CloudinaryID:  textField(input, "cloudinary_id", prior.CloudinaryID),
		Mood:          textField(input, "mood", prior.Mood),
		Currency:      textField(input, "currency", prior.Currency),
		Price:         numberField(input, "price", prior.Price),
		WidthCM:       numberField(input, "width_cm", prior.WidthCM),
		HeightCM:      numberField(input, "height_cm", prior.HeightCM),
		Segments:      segmentsField(input, prior.Segments),
		Status:        statusField(input, prior.Status),
	}

	if art.Currency == "" {
		art.Currency = "EUR"
	}

	art.Size = textField(input, "size", prior.Size)
	if art.Size == "" && art.WidthCM != nil && art.HeightCM != nil {
		art.Size = fmt.Sprintf("%s × %s см", formatDimension(*art.WidthCM), formatDimension(*art.HeightCM))
	}

	switch {
	case prior.ID != "":
		art.ID = prior.ID
	case textField(input, "id", "") != "":
		art.ID = textField(input, "id", "")
	default:
		art.ID = uuid.NewString()
	}

	art.CreatedAt = prior.CreatedAt
	if art.CreatedAt.IsZero() {
		art.CreatedAt = now
	}
	art.UpdatedAt = now

	return art
}

// textField returns the trimmed input string for key, falling back to the
// existing value when the key is absent or not a string.
func textField(input map[string]any, key, existing string) string {
	raw, ok := input[key]
	if !ok {
		return existing
	}
	s, ok := raw.(string)
	if !ok {
		return existing
	}
	return strings.TrimSpace(s)
}

// numberField accepts number-like input, including numeric strings.
// Un-parseable or empty values fall back to the existing value.
func numberField(input map[string]any, key string, existing *float64) *float64 {
	raw, ok := input[key]
	if !ok {
		return existing
	}

	switch v := raw.(type) {
	case float64:
		n := v
		return &n
	case int:
		n := float64(v)
		return &n
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return existing
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return existing
		}
		return &n
	default:
		return existing
	}
}

// segmentsField accepts either a sequence of strings or a single
// comma-separated string. Entries are trimmed and empty values dropped.
// Exact duplicates are kept as supplied.
func segmentsField(input map[string]any, existing []string) []string {
	raw, ok := input["segments"]
	if !ok {
		return append([]string(nil), existing...)
	}

	var parts []string
	switch v := raw.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []string:
		parts = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	default:
		return append([]string(nil), existing...)
	}

	out := []string{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// statusField applies the four-value allow-list; anything else silently
// becomes "available".
func statusField(input map[string]any, existing Status) Status {
	candidate := existing
	if raw, ok := input["status"]; ok {
		if s, ok := raw.(string); ok {
			candidate = Status(strings.TrimSpace(s))
		}
	}
	if !candidate.Valid() {
		return StatusAvailable
	}
	return candidate
}

// formatDimension renders a centimeter dimension without trailing zeros.
func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
