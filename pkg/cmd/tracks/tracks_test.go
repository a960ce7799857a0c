package tracks

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTracks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listTracks(&buf, "../../../assets/tracks/tracks.yaml"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Regexp(t, `^ring-01\s+Dustbowl Ring\s+3\s+40x24\s+10\s+4$`, lines[1])
	assert.Regexp(t, `^ring-02\s+Quarry Loop\s+3-5\s+56x32\s+10\s+4$`, lines[2])
}

func TestListTracksMissingCatalog(t *testing.T) {
	assert.Error(t, listTracks(&bytes.Buffer{}, "nope.yaml"))
}
