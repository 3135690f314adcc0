package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cutoff/internal/driver"
	"github.com/roach88/cutoff/internal/recorder"
	"github.com/roach88/cutoff/internal/store"
)

// executeCommand runs the root command with args and returns stdout and
// stderr separately.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeDriverFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "driver.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunCommand_Default(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "run")
	require.NoError(t, err)

	assert.Equal(t, "Sum: 150\nLarge sum: 150\n", stdout)
	assert.Empty(t, stderr, "non-verbose run without --db logs nothing")
}

func TestRunCommand_Trace(t *testing.T) {
	stdout, _, err := executeCommand(t, "run", "--trace")
	require.NoError(t, err)

	want := "Running total: 10\n" +
		"Running total: 30\n" +
		"Running total: 60\n" +
		"Running total: 100\n" +
		"Running total: 150\n" +
		"Sum: 150\n" +
		"Running total: 25\n" +
		"Running total: 75\n" +
		"Running total: 150\n" +
		"Large sum: 150\n"
	assert.Equal(t, want, stdout)
}

func TestRunCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "run", "--format", "json")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "run_default_json", []byte(stdout))
}

func TestRunCommand_Config(t *testing.T) {
	path := writeDriverFile(t, `
threshold: 10
sequences: [
	{label: "Short", items: [4, 4, 4, 4]},
	{label: "Long", items: [1, 2, 3]},
]
`)

	stdout, _, err := executeCommand(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Short: 12\nLong: 6\n", stdout)
}

func TestRunCommand_ConfigInvalidItem(t *testing.T) {
	path := writeDriverFile(t, `
sequences: [
	{label: "Bad", items: [1, "two", 3]},
]
`)

	stdout, _, err := executeCommand(t, "run", "--config", path)
	require.Error(t, err)

	assert.Empty(t, stdout, "nothing is summed when an item is invalid")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))
}

func TestRunCommand_ConfigNoSequences(t *testing.T) {
	path := writeDriverFile(t, "sequences: []\n")

	_, _, err := executeCommand(t, "run", "--config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, driver.ErrNoSequences)
	assert.Equal(t, ErrCodeLoadFailed, ErrorCode(err))
}

func TestRunCommand_ConfigLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax_error", "sequences: [\n"},
		{"missing_label", "sequences: [{items: [1]}]\n"},
		{"empty_label", "sequences: [{label: \"\", items: [1]}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDriverFile(t, tt.src)

			_, _, err := executeCommand(t, "run", "--config", path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Equal(t, ErrCodeLoadFailed, ErrorCode(err))

			var le *driver.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, path, le.Path)
		})
	}
}

func TestRunCommand_ConfigSumOutOfRange(t *testing.T) {
	path := writeDriverFile(t, `sequences: [{label: "huge", items: [-9223372036854775807, -10, 5]}]`)

	stdout, _, err := executeCommand(t, "run", "--config", path)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))
	assert.Contains(t, err.Error(), "sum out of int64 range")
}

func TestTraceFlagDescribesJSON(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "sum"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)

		flag := sub.Flags().Lookup("trace")
		require.NotNil(t, flag)
		assert.Contains(t, flag.Usage, "JSON always includes steps", name)
	}
}

func TestSumCommand_JSONIncludesStepsWithoutTrace(t *testing.T) {
	stdout, _, err := executeCommand(t, "sum", "--format", "json", "60", "50")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"steps":[{"index":0,"item":60,"total":60,"crossed":false},{"index":1,"item":50,"total":110,"crossed":true}]`)
}

func TestRunCommand_ConfigMissing(t *testing.T) {
	_, _, err := executeCommand(t, "run", "--config", filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load driver")
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
}

func TestRunCommand_RecordsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	stdout, stderr, err := executeCommand(t, "run", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "Sum: 150\nLarge sum: 150\n", stdout, "recording does not change stdout")
	assert.Contains(t, stderr, "runs recorded")
	assert.Contains(t, stderr, "inserted=2")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "Sum", runs[0].Label)
	assert.Equal(t, int64(150), runs[0].Total)
	assert.Equal(t, 5, runs[0].Consumed)
	assert.Equal(t, "Large sum", runs[1].Label)
	assert.Equal(t, 3, runs[1].Consumed)
	assert.Less(t, runs[0].Seq, runs[1].Seq)
	assert.Equal(t, runs[0].Session, runs[1].Session, "one invocation shares a session")
}

func TestRunCommand_RecordTwiceIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, _, err := executeCommand(t, "run", "--db", dbPath)
	require.NoError(t, err)

	_, stderr, err := executeCommand(t, "run", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "inserted=0")
	assert.Contains(t, stderr, "duplicates=2")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunDriver_JSONWithRecorded(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	opts := &RunOptions{
		RootOptions: &RootOptions{Format: "json"},
		Database:    dbPath,
		Sessions:    recorder.NewFixedGenerator("session-1"),
	}
	require.NoError(t, runDriverCommand(opts, cmd))

	var resp struct {
		Status string    `json:"status"`
		Data   RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(100), resp.Data.Threshold)
	require.Len(t, resp.Data.Outcomes, 2)
	require.Len(t, resp.Data.Recorded, 2)
	for _, r := range resp.Data.Recorded {
		assert.True(t, r.Inserted)
		assert.Equal(t, "session-1", r.Run.Session)
		assert.NotEmpty(t, r.Run.ID)
	}
	assert.Equal(t, int64(1), resp.Data.Recorded[0].Run.Seq)
	assert.Equal(t, int64(2), resp.Data.Recorded[1].Run.Seq)
}

func TestRunCommand_RejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "run", "extra")
	require.Error(t, err)
}
