// Package report reads cargo-timing HTML reports and recovers the
// embedded build unit data and the report's start timestamp.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/huangsam/buildpulse/schema"
)

// ErrMissingUnitData indicates the report contains no embedded
// UNIT_DATA assignment at all.
var ErrMissingUnitData = errors.New("no UNIT_DATA block found in report")

// unitDataAnchor locates the start of the embedded script assignment.
// The array span itself is recovered by a bracket-balance scan, since a
// naive greedy regex can be broken by nested objects or bracket
// characters inside string literals.
var unitDataAnchor = regexp.MustCompile(`const\s+UNIT_DATA\s*=\s*`)

// ExtractUnits reads a report file and returns its build units in
// source order.
func ExtractUnits(path string) ([]schema.BuildUnit, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	return ParseUnitData(string(contents))
}

// ParseUnitData recovers the UNIT_DATA array from report contents and
// decodes it. The anchor match and the JSON decode are deliberately
// separate steps so a missing block and a malformed block surface as
// distinct errors.
func ParseUnitData(contents string) ([]schema.BuildUnit, error) {
	loc := unitDataAnchor.FindStringIndex(contents)
	if loc == nil {
		return nil, ErrMissingUnitData
	}

	span, err := scanArray(contents[loc[1]:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingUnitData, err)
	}

	var units []schema.BuildUnit
	if err := json.Unmarshal([]byte(span), &units); err != nil {
		return nil, fmt.Errorf("malformed UNIT_DATA block: %w", err)
	}
	return units, nil
}

// scanArray returns the balanced bracket-delimited array at the start
// of s. String literals and escapes are honored so brackets inside
// strings do not affect the depth count.
func scanArray(s string) (string, error) {
	if len(s) == 0 || s[0] != '[' {
		return "", errors.New("UNIT_DATA assignment is not an array literal")
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return s[:i+1], nil
			}
		}
	}
	return "", errors.New("unterminated UNIT_DATA array literal")
}
