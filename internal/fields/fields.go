// =============================================================================
// samcut - Field Selection
// =============================================================================
//
// This package turns the user's requested field names into output rows.
//
//   Expand   : rewrite the request list once, replacing every "std" alias
//              with the 11 mandatory SAM field names
//   Resolve  : look each requested name up in a record, substituting the
//              fill string for names the record does not carry
//   Format   : join resolved values with the single-character delimiter
//
// Absence is never an error, only a fill.
//
// =============================================================================

package fields

import (
	"strings"

	"github.com/ginjaninja78/samcut/internal/record"
)

// StandardAlias expands to the 11 mandatory SAM fields.
const StandardAlias = "std"

// =============================================================================
// FORMAT CONFIGURATION
// =============================================================================

// FormatConfig controls how rows are rendered. It is never mutated here.
type FormatConfig struct {
	// Delimiter separates output fields.
	Delimiter rune

	// Fill replaces fields a record does not carry. Written verbatim.
	Fill string

	// Header requests one leading row of field names.
	Header bool
}

// Lookuper is anything that resolves field names. *record.FieldSpace is the
// production implementation.
type Lookuper interface {
	Lookup(name string) (string, bool)
}

var _ Lookuper = (*record.FieldSpace)(nil)

// =============================================================================
// ALIAS EXPANSION
// =============================================================================

// Expand returns a new request list with every StandardAlias replaced, in
// place, by the mandatory field names. Other names keep their relative order
// and duplicates are preserved. An empty request means a single alias.
func Expand(requested []string) []string {
	if len(requested) == 0 {
		requested = []string{StandardAlias}
	}

	out := make([]string, 0, len(requested)+record.MandatoryCount)
	for _, name := range requested {
		if name == StandardAlias {
			out = append(out, record.MandatoryFields[:]...)
			continue
		}
		out = append(out, name)
	}
	return out
}

// =============================================================================
// RESOLUTION AND FORMATTING
// =============================================================================

// Resolve looks up each requested name in order. Every occurrence is resolved
// on its own, so a repeated absent name yields the fill every time.
func Resolve(requested []string, fs Lookuper, fill string) []string {
	values := make([]string, len(requested))
	for i, name := range requested {
		v, ok := fs.Lookup(name)
		if !ok {
			v = fill
		}
		values[i] = v
	}
	return values
}

// Join concatenates values with a single-character delimiter.
func Join(values []string, delim rune) string {
	return strings.Join(values, string(delim))
}

// Format resolves the requested names against fs and joins the result.
func Format(requested []string, fs Lookuper, cfg FormatConfig) string {
	return Join(Resolve(requested, fs, cfg.Fill), cfg.Delimiter)
}

// HeaderRow joins the (already expanded) requested names themselves.
func HeaderRow(requested []string, delim rune) string {
	return Join(requested, delim)
}
