package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("opens after consecutive failures", func(t *testing.T) {
		cb := New(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
		}
		assert.Equal(t, StateOpen, cb.State())
		assert.ErrorIs(t, cb.Execute(func() error { return nil }), ErrCircuitOpen)
	})

	t.Run("success resets the failure count", func(t *testing.T) {
		cb := New(3, time.Minute)

		cb.Execute(func() error { return errBoom })
		cb.Execute(func() error { return errBoom })
		cb.Execute(func() error { return nil })
		cb.Execute(func() error { return errBoom })

		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("probe after the reset timeout closes on success", func(t *testing.T) {
		cb := New(1, 10*time.Millisecond)

		cb.Execute(func() error { return errBoom })
		assert.Equal(t, StateOpen, cb.State())

		time.Sleep(20 * time.Millisecond)
		assert.NoError(t, cb.Execute(func() error { return nil }))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("probe failure reopens immediately", func(t *testing.T) {
		cb := New(5, 10*time.Millisecond)

		for i := 0; i < 5; i++ {
			cb.Execute(func() error { return errBoom })
		}
		time.Sleep(20 * time.Millisecond)

		cb.Execute(func() error { return errBoom })
		assert.Equal(t, StateOpen, cb.State())
	})
}
