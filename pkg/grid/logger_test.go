package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger_DebugTracksSized(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	_, err := Layout([]GridItem{NewItem(0)}, ContainerInputs{
		Columns:        ParseTemplate("50px 50px", 0),
		Rows:           ParseTemplate("", 0),
		AvailableWidth: 100,
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("tracks sized").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["columns"])
	assert.Equal(t, 100.0, entries[0].ContextMap()["width"])
}
