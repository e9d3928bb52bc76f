package log

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalBeforeInit(t *testing.T) {
	_, err := GetLastNLogs(5)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, Init(dbPath, zerolog.DebugLevel))
	t.Cleanup(func() { _ = Close() })

	assert.ErrorIs(t, Init(dbPath, zerolog.DebugLevel), ErrAlreadyInitialized)

	Info().Str("op", "insert").Msg("first")
	Debug().Int("size", 9).Msg("second")

	logs, err := GetLastNLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Contains(t, logs[0].LogData, `"first"`)
	assert.Contains(t, logs[1].LogData, `"size":9`)

	since, err := GetLogsSince(time.Now().Add(-time.Minute), 0)
	require.NoError(t, err)
	assert.Len(t, since, 2)

	all, err := GetLogsSinceStart()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCloseWritesFinalRecord(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "close.db")
	require.NoError(t, Init(dbPath, zerolog.InfoLevel))
	Info().Msg("before close")
	require.NoError(t, Close())
	require.NoError(t, Close())

	_, err := GetLastNLogs(1)
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, Init(dbPath, zerolog.InfoLevel))
	defer Close()
	logs, err := GetLastNLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Contains(t, logs[0].LogData, "before close")
	assert.Contains(t, logs[1].LogData, "Closing SQLite logger")
}

func TestSetOutputLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.InfoLevel)
	defer SetOutput(&bytes.Buffer{}, zerolog.Disabled)

	Debug().Msg("hidden")
	Printf("visible %d", 1)

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "visible 1")
}
