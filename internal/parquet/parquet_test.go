package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/buildpulse/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimingRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	parquetSchema := parquet.SchemaOf(new(BuildTimingRun))
	require.NotNil(t, parquetSchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"started_at",
		"duration_ms",
		"first_crate",
		"target",
		"blocked_ms",
		"command",
		"report_path",
		"recorded_at",
	}

	for _, colName := range expectedColumns {
		col, ok := parquetSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "build_runs.parquet")

	// Get mock data
	data := MockFetchBuildTimingRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[BuildTimingRun](file)
	defer reader.Close()

	// Read all rows
	readData := make([]BuildTimingRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].StartedAt, readData[i].StartedAt, "StartedAt should match")
		assert.Equal(t, data[i].DurationMs, readData[i].DurationMs, "DurationMs should match")
		assert.Equal(t, data[i].FirstCrate, readData[i].FirstCrate, "FirstCrate should match")
		assert.Equal(t, data[i].Target, readData[i].Target, "Target should match")
		assert.Equal(t, data[i].BlockedMs, readData[i].BlockedMs, "BlockedMs should match")
		assert.Equal(t, data[i].ReportPath, readData[i].ReportPath, "ReportPath should match")
		assert.WithinDuration(t, data[i].RecordedAt, readData[i].RecordedAt, time.Nanosecond, "RecordedAt should match within nanosecond precision")

		// Check nullable Command field
		if data[i].Command == nil {
			assert.Nil(t, readData[i].Command, "Command should be nil")
		} else {
			require.NotNil(t, readData[i].Command, "Command should not be nil")
			assert.Equal(t, *data[i].Command, *readData[i].Command, "Command should match")
		}
	}
}

func TestWriteRunsParquet_EmptyData(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_build_runs.parquet")

	// Write empty data
	err := WriteRunsParquet([]BuildTimingRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteRunsParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchBuildTimingRuns()
	err := WriteRunsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestConvertRunRecords(t *testing.T) {
	command := "cargo build --timings"
	now := time.Now().UTC()
	records := []schema.RunRecord{
		{
			StartedAt:  "2026-01-01T00:00:00.000Z",
			DurationMs: 9000,
			FirstCrate: "a",
			Target:     "b",
			BlockedMs:  0,
			Command:    &command,
			ReportPath: "/tmp/cargo-timing.html",
			RecordedAt: now,
		},
		{
			StartedAt:  "2026-01-02T00:00:00.000Z",
			DurationMs: 5000,
			FirstCrate: "c",
			Target:     "d",
			BlockedMs:  250,
			Command:    nil,
			ReportPath: "/tmp/other-timing.html",
			RecordedAt: now,
		},
	}

	converted := ConvertRunRecords(records)
	require.Len(t, converted, 2)

	assert.Equal(t, "2026-01-01T00:00:00.000Z", converted[0].StartedAt)
	assert.Equal(t, int64(9000), converted[0].DurationMs)
	require.NotNil(t, converted[0].Command)
	assert.Equal(t, command, *converted[0].Command)

	assert.Equal(t, "c", converted[1].FirstCrate)
	assert.Nil(t, converted[1].Command, "Second record should keep nil Command")
}

func TestMockFetchBuildTimingRuns(t *testing.T) {
	data := MockFetchBuildTimingRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")
	assert.Len(t, data, 3, "Should return 3 mock records")

	// Verify the structure of mock data
	assert.Equal(t, "2026-01-05T08:15:00.000Z", data[0].StartedAt)
	assert.NotNil(t, data[0].Command, "First record should have Command")

	// Third record should have nil nullable field
	assert.Nil(t, data[2].Command, "Third record should have nil Command")
	assert.Equal(t, int64(0), data[2].BlockedMs)
}
