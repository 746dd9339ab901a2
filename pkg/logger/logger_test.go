package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestComponentTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	l := Component("watcher").Output(&buf)
	l.Info().Msg("tick")

	out := buf.String()
	assert.Contains(t, out, `"component":"watcher"`)
	assert.Contains(t, out, `"service":"joogo"`)
}

func TestSetLevelFallsBackToInfo(t *testing.T) {
	SetLevel("bogus")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
