package logging

import (
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.New(),
		Time:    time.Date(2026, 1, 12, 20, 14, 4, 0, time.UTC),
		Level:   log.WarnLevel,
		Message: "index fetch failed\n",
	}

	out, err := (&Formatter{}).Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.True(t, strings.HasPrefix(line, "[2026-01-12 20:14:04] [warn "), "got %q", line)
	assert.Contains(t, line, "index fetch failed")
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.NotContains(t, strings.TrimSuffix(line, "\n"), "\n", "one entry renders one line")
}

func TestFormatterDataFields(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.New(),
		Time:    time.Date(2026, 1, 12, 20, 14, 4, 0, time.UTC),
		Level:   log.DebugLevel,
		Message: "cache hit",
		Data:    log.Fields{"freshness": "stale"},
	}

	out, err := (&Formatter{}).Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "freshness=stale")
}
