package render

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetModeLogsChanges(t *testing.T) {
	var buf bytes.Buffer
	v := New(nil, zerolog.New(&buf))

	v.setMode(modeCurves)
	assert.Equal(t, modeCurves, v.mode)
	assert.Contains(t, buf.String(), "Display mode changed")
	assert.Contains(t, buf.String(), `"mode":1`)

	// Re-selecting the active mode is a no-op and stays quiet.
	buf.Reset()
	v.setMode(modeCurves)
	assert.Equal(t, modeCurves, v.mode)
	assert.Empty(t, buf.String())
}
