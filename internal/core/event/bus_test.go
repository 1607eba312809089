package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []RoundCompleted
	Subscribe(b, func(ev RoundCompleted) { got = append(got, ev) })

	Emit(b, RoundCompleted{Round: 1})
	assert.Equal(t, 1, b.Pending())
	assert.Equal(t, 0, b.DispatchAll())
	assert.Empty(t, got)

	b.SwapBuffers()
	assert.Equal(t, 0, b.Pending())
	assert.Equal(t, 1, b.DispatchAll())
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Round)

	// the old front becomes the back and is cleared on the next swap
	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll())
	assert.Len(t, got, 1)
}

func TestBusRoutesByType(t *testing.T) {
	b := NewBus()
	var rounds, audits int
	Subscribe(b, func(RoundCompleted) { rounds++ })
	Subscribe(b, func(AuditFailed) { audits++ })
	Subscribe(b, func(AuditFailed) { audits++ })

	Emit(b, AuditFailed{Err: errors.New("boom")})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 0, rounds)
	assert.Equal(t, 2, audits)
}
