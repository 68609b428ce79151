package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/buildpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitData(t *testing.T) {
	contents := `<html><script>
const UNIT_DATA = [
  {"name": "serde", "version": "1.0.200", "target": "", "start": 0.0, "duration": 10.0},
  {"name": "myapp", "version": "0.1.0", "target": "bin \"myapp\"", "start": 2.0, "duration": 20.0}
];
const CONCURRENCY_DATA = [];
</script></html>`

	units, err := ParseUnitData(contents)
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, "serde", units[0].Name)
	assert.Equal(t, "1.0.200", units[0].Version)
	assert.Equal(t, 0.0, units[0].Start)
	assert.Equal(t, 10.0, units[0].Duration)

	assert.Equal(t, "myapp", units[1].Name)
	assert.Equal(t, `bin "myapp"`, units[1].Target)
}

func TestParseUnitData_MissingBlock(t *testing.T) {
	_, err := ParseUnitData("<html><body>no timing data here</body></html>")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingUnitData)
}

func TestParseUnitData_MalformedBlock(t *testing.T) {
	contents := `const UNIT_DATA = [{"name": "serde", "start": "not-a-number"}];`
	_, err := ParseUnitData(contents)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingUnitData)
	assert.Contains(t, err.Error(), "malformed UNIT_DATA block")
}

func TestParseUnitData_EmptyArray(t *testing.T) {
	units, err := ParseUnitData(`const UNIT_DATA = [];`)
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestParseUnitData_BracketsInsideStrings(t *testing.T) {
	// Brackets inside string literals must not unbalance the scan
	contents := `const UNIT_DATA = [
  {"name": "weird]lib", "version": "1.0.0", "target": "bin \"[x]\"", "start": 0.0, "duration": 1.5}
];`
	units, err := ParseUnitData(contents)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "weird]lib", units[0].Name)
	assert.Equal(t, `bin "[x]"`, units[0].Target)
}

func TestParseUnitData_NotAnArray(t *testing.T) {
	_, err := ParseUnitData(`const UNIT_DATA = {"oops": true};`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingUnitData)
}

func TestParseUnitData_UnterminatedArray(t *testing.T) {
	_, err := ParseUnitData(`const UNIT_DATA = [{"name": "serde"`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingUnitData)
}

func TestExtractUnits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cargo-timing.html")
	contents := `const UNIT_DATA = [{"name": "libc", "version": "0.2.150", "target": "", "start": 1.0, "duration": 2.0}];`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	units, err := ExtractUnits(path)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, schema.BuildUnit{Name: "libc", Version: "0.2.150", Start: 1.0, Duration: 2.0}, units[0])
}

func TestExtractUnits_ReadError(t *testing.T) {
	_, err := ExtractUnits("/nonexistent/cargo-timing.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read report")
}

func BenchmarkParseUnitData(b *testing.B) {
	// Large builds embed thousands of units; time the full scan + decode.
	var sb strings.Builder
	sb.WriteString("<html><script>\nconst UNIT_DATA = [")
	for i := 0; i < 5000; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"name": "crate%d", "version": "1.0.%d", "target": "", "start": %d.5, "duration": 2.25}`, i, i, i)
	}
	sb.WriteString("];\n</script></html>")
	contents := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseUnitData(contents); err != nil {
			b.Fatal(err)
		}
	}
}
