package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoolString(t *testing.T) {
	trueValues := []string{"yes", "YES", "true", "True", "1"}
	for _, v := range trueValues {
		got, err := ParseBoolString(v)
		require.NoError(t, err, "value %q", v)
		assert.True(t, got, "value %q", v)
	}

	falseValues := []string{"no", "NO", "false", "False", "0"}
	for _, v := range falseValues {
		got, err := ParseBoolString(v)
		require.NoError(t, err, "value %q", v)
		assert.False(t, got, "value %q", v)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestGetColorLabel(t *testing.T) {
	for _, label := range []string{"Dominant", "Major", "Notable", "Minor"} {
		assert.Contains(t, GetColorLabel(label), label)
	}
}

func TestSelectOutputFile(t *testing.T) {
	// Empty path selects stdout
	file, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, file)

	// A real path creates the file
	path := filepath.Join(t.TempDir(), "out.txt")
	file, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	assert.NotEqual(t, os.Stdout, file)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.Equal(t, "buildpulse_history.db", filepath.Base(path))
}
