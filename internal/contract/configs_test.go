package contract

import (
	"testing"

	"github.com/huangsam/buildpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		ReportPathStr:  "cargo-timing.html",
		CommandStr:     "cargo build",
		Output:         "text",
		Top:            5,
		HistoryBackend: "sqlite",
		Emoji:          "yes",
		Color:          "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	cfg := &Config{}
	input := validInput()

	err := ProcessAndValidate(cfg, input)
	require.NoError(t, err)

	assert.Equal(t, "cargo-timing.html", cfg.ReportPath)
	assert.Equal(t, "cargo build", cfg.Command)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, 5, cfg.TopUnits)
	assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidate_OutputCaseInsensitive(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Output = "JSON"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.JSONOut, cfg.Output)
}

func TestProcessAndValidate_InvalidOutput(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Output = "yaml"

	err := ProcessAndValidate(cfg, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestProcessAndValidate_TopOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		top  int
	}{
		{"negative", -1},
		{"above max", MaxTopUnits + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			input := validInput()
			input.Top = tt.top

			err := ProcessAndValidate(cfg, input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "top must be between")
		})
	}
}

func TestProcessAndValidate_InvalidBoolFlags(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Emoji = "maybe"
	err := ProcessAndValidate(cfg, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --emoji value")

	input = validInput()
	input.Color = "sometimes"
	err = ProcessAndValidate(cfg, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --color value")
}

func TestProcessAndValidate_InvalidBackend(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.HistoryBackend = "oracle"

	err := ProcessAndValidate(cfg, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid history backend")
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr string
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", ""},
		{"none needs nothing", schema.NoneBackend, "", ""},
		{"mysql missing conn str", schema.MySQLBackend, "", "history-db-connect is required"},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw/db", "@tcp("},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/buildpulse", ""},
		{"postgres missing conn str", schema.PostgreSQLBackend, "", "history-db-connect is required"},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=buildpulse", "host="},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", "dbname="},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=buildpulse", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{ReportPath: "a.html", TopUnits: 7}
	clone := cfg.Clone()

	clone.ReportPath = "b.html"
	assert.Equal(t, "a.html", cfg.ReportPath, "clone must not alias the original")
	assert.Equal(t, 7, clone.TopUnits)
}
