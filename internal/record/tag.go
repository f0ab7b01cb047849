// =============================================================================
// samcut - Optional Tags
// =============================================================================
//
// Every token after the 11 mandatory columns is an optional field written as
// NAME:TYPE:VALUE. Tags are kept by name; a repeated name replaces the
// earlier value.
//
// =============================================================================

package record

import "strings"

// Tag is one optional field, NAME:TYPE:VALUE.
type Tag struct {
	Name  string
	Type  string
	Value string
}

// ParseTag splits an optional-field token into its three colon-separated
// parts. Anything other than exactly three parts is a MalformedOptionalTag
// error. The type code is kept on the Tag but no type-aware decoding happens
// here.
func ParseTag(token string) (Tag, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return Tag{}, &FormatError{Kind: MalformedOptionalTag, Token: token}
	}
	return Tag{Name: parts[0], Type: parts[1], Value: parts[2]}, nil
}

// tagTable holds the optional tags of one record. The last tag with a given
// name wins.
type tagTable struct {
	values map[string]Tag
}

func (t *tagTable) put(tag Tag) {
	if t.values == nil {
		t.values = make(map[string]Tag)
	}
	t.values[tag.Name] = tag
}

func (t *tagTable) get(name string) (Tag, bool) {
	tag, ok := t.values[name]
	return tag, ok
}
