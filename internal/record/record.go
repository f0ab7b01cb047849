// =============================================================================
// samcut - Record Assembler
// =============================================================================
//
// This package turns one line of SAM text into a FieldSpace: a single
// name-addressable view over everything the line carries.
//
// ASSEMBLY STEPS:
//   1. Header lines (leading '@') yield ErrHeader and consume no index
//   2. Split the line on tabs; fewer than 11 tokens is TooFewFields
//   3. The first 11 tokens become the mandatory fields
//   4. Every further token is parsed as NAME:TYPE:VALUE (last one wins)
//   5. FLAG is parsed as a signed 32-bit integer and decoded into 12 booleans
//   6. The caller-supplied data-line index becomes the synthetic "n" field
//
// FIELD NAMES:
//   - Mandatory : qname flag rname pos mapq cigar rnext pnext tlen seq qual
//   - Flags     : paired proper_pair unmap munmap reverse mreverse read1 read2
//                 secondary qcfail dup supplementary ("1" or "0")
//   - Synthetic : n (data-line index), flags (comma-joined set flag names)
//   - Tags      : the NAME part of each optional field
//
// The data-line index is passed in explicitly. Nothing here keeps state
// across lines.
//
// =============================================================================

package record

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/samcut/internal/samflag"
)

// =============================================================================
// FIELD NAMES
// =============================================================================

// MandatoryCount is the number of positional SAM fields.
const MandatoryCount = 11

// MandatoryFields lists the positional SAM fields in column order.
var MandatoryFields = [MandatoryCount]string{
	"qname", "flag", "rname", "pos", "mapq", "cigar", "rnext", "pnext", "tlen", "seq", "qual",
}

const (
	// IndexField is the synthetic 1-based data-line index.
	IndexField = "n"

	// FlagsField is the synthetic comma-joined list of set flag names.
	FlagsField = "flags"

	flagColumn = 1
)

var mandatoryIndex = func() map[string]int {
	m := make(map[string]int, MandatoryCount)
	for i, name := range MandatoryFields {
		m[name] = i
	}
	return m
}()

// =============================================================================
// FIELD SPACE
// =============================================================================

// FieldSpace holds the fields of one assembled record.
type FieldSpace struct {
	// Mandatory holds the 11 positional fields verbatim.
	Mandatory [MandatoryCount]string

	// Flags is the decoded FLAG field.
	Flags samflag.Bits

	// Index is the 1-based data-line index.
	Index int

	tags tagTable
}

// Lookup resolves a field name. When several sources share a name the
// synthetic index wins, then flag names, then optional tags, then the
// mandatory fields.
func (fs *FieldSpace) Lookup(name string) (string, bool) {
	if name == IndexField {
		return strconv.Itoa(fs.Index), true
	}
	if name == FlagsField {
		return fs.Flags.String(), true
	}
	if set, ok := fs.Flags.Value(name); ok {
		if set {
			return "1", true
		}
		return "0", true
	}
	if tag, ok := fs.tags.get(name); ok {
		return tag.Value, true
	}
	if i, ok := mandatoryIndex[name]; ok {
		return fs.Mandatory[i], true
	}
	return "", false
}

// =============================================================================
// ASSEMBLY
// =============================================================================

// IsHeader reports whether line is a SAM header line.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, "@")
}

// Assemble builds the FieldSpace for one input line.
//
// PARAMETERS:
//   - line: One line of SAM text without its line terminator.
//   - index: The data-line index to record under "n".
//
// RETURNS:
//   - The assembled FieldSpace.
//   - ErrHeader for header lines, or a *FormatError for malformed lines.
//     FormatError.Line is left for the caller to set.
func Assemble(line string, index int) (*FieldSpace, error) {
	if IsHeader(line) {
		return nil, ErrHeader
	}

	tokens := strings.Split(line, "\t")
	if len(tokens) < MandatoryCount {
		return nil, &FormatError{Kind: TooFewFields, Found: len(tokens)}
	}

	fs := &FieldSpace{Index: index}
	copy(fs.Mandatory[:], tokens[:MandatoryCount])

	for _, token := range tokens[MandatoryCount:] {
		tag, err := ParseTag(token)
		if err != nil {
			return nil, err
		}
		fs.tags.put(tag)
	}

	flag, err := strconv.ParseInt(fs.Mandatory[flagColumn], 10, 32)
	if err != nil {
		return nil, &FormatError{Kind: InvalidFlagValue, Token: fs.Mandatory[flagColumn]}
	}
	fs.Flags = samflag.Decode(int32(flag))

	return fs, nil
}
