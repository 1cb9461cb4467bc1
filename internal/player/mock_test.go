package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMock_Transitions(t *testing.T) {
	m := NewMock()

	assert.NoError(t, m.Play("/a.mp3"))
	assert.Equal(t, Playing, m.State())

	m.Pause()
	assert.Equal(t, Paused, m.State())

	m.Pause()
	assert.Equal(t, Paused, m.State(), "pause while paused is a no-op")

	m.Resume()
	assert.Equal(t, Playing, m.State())

	m.Stop()
	assert.Equal(t, Stopped, m.State())
	assert.Equal(t, []string{"/a.mp3"}, m.PlayCalls())
}

func TestMock_PlayError(t *testing.T) {
	m := NewMock()
	boom := errors.New("device busy")
	m.SetPlayError(boom)

	err := m.Play("/a.mp3")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Stopped, m.State())
}

func TestMock_SimulateFinished(t *testing.T) {
	m := NewMock()
	_ = m.Play("/a.mp3")

	m.SimulateFinished()

	assert.Equal(t, Stopped, m.State())
	select {
	case <-m.FinishedChan():
	default:
		t.Fatal("expected finished signal")
	}
}
