package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phprun/internal/storage"
	"phprun/internal/ui"
)

type recordingViewer struct {
	viewed []storage.PanelOutput
}

func (v *recordingViewer) View(out storage.PanelOutput) error {
	v.viewed = append(v.viewed, out)
	return nil
}

func TestShowOutput_Viewer(t *testing.T) {
	f := newFixture(t)
	viewer := &recordingViewer{}
	a := f.app(t, func(o *Options) { o.Viewer = viewer })

	require.NoError(t, a.ShowOutput(true))
	require.Len(t, viewer.viewed, 1)
	assert.Equal(t, ui.NoOutput, viewer.viewed[0].Text)

	require.NoError(t, a.RunTest(context.Background(), f.cursor(t, 7)))
	require.NoError(t, a.ShowOutput(true))
	require.Len(t, viewer.viewed, 2)
	assert.True(t, viewer.viewed[1].Succeeded)
	assert.Contains(t, viewer.viewed[1].Text, "--filter=testCreatesUser$")
	assert.NotEmpty(t, viewer.viewed[1].RunID)
}

func TestToggleOutput(t *testing.T) {
	f := newFixture(t)
	viewer := &recordingViewer{}
	a := f.app(t, func(o *Options) { o.Viewer = viewer })

	require.NoError(t, a.ToggleOutput(true))
	visible, err := a.panel.Visible()
	require.NoError(t, err)
	assert.True(t, visible)
	assert.Len(t, viewer.viewed, 1)

	require.NoError(t, a.ToggleOutput(true))
	visible, err = a.panel.Visible()
	require.NoError(t, err)
	assert.False(t, visible)
	assert.Len(t, viewer.viewed, 1)
}

func TestShowOutput_Plain(t *testing.T) {
	f := newFixture(t)
	a := f.app(t)

	require.ErrorIs(t, a.RunTest(context.Background(), f.cursor(t, 12)), ErrTestsFailed)
	f.out.Reset()

	require.NoError(t, a.ShowOutput(false))
	assert.Contains(t, f.out.String(), "✗ ")
	assert.Contains(t, f.out.String(), "Failed asserting that false is true.")
}
