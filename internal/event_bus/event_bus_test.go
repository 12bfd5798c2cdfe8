package event_bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var at = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

func TestEventBus_Publish(t *testing.T) {
	t.Run("handlers run in subscription order", func(t *testing.T) {
		bus := NewEventBus()
		var calls []string
		bus.Subscribe(ErrorSetType, func(e Event) error { calls = append(calls, "a"); return nil })
		bus.Subscribe(ErrorSetType, func(e Event) error { calls = append(calls, "b"); return nil })
		bus.Subscribe(ErrorClearedType, func(e Event) error { calls = append(calls, "other"); return nil })

		err := bus.Publish(NewEvent(context.Background(), ErrorSetType, at, ErrorSet{Message: "x"}))

		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, calls)
	})

	t.Run("unsubscribed handler is not called", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		unsubscribe := bus.Subscribe(BudgetDeletedType, func(e Event) error { called = true; return nil })
		unsubscribe()

		assert.NoError(t, bus.Publish(NewEvent(context.Background(), BudgetDeletedType, at, BudgetChanged{})))
		assert.False(t, called)
	})

	t.Run("handler errors and panics are collected", func(t *testing.T) {
		bus := NewEventBus()
		reached := false
		bus.Subscribe(SettingsChangedType, func(e Event) error { return errors.New("boom") })
		bus.Subscribe(SettingsChangedType, func(e Event) error { panic("bad handler") })
		bus.Subscribe(SettingsChangedType, func(e Event) error { reached = true; return nil })

		err := bus.Publish(NewEvent(context.Background(), SettingsChangedType, at, SettingsChanged{Key: "theme", Value: "dark"}))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "2 handler(s) failed")
		assert.True(t, reached)
	})

	t.Run("cancelled context publishes nothing", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		bus.Subscribe(TransactionAddedType, func(e Event) error { called = true; return nil })
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, TransactionAddedType, at, TransactionAdded{ID: "1"}))

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var got []TransactionDeleted
	SubscribeTyped(bus, TransactionDeletedType, func(e EventT[TransactionDeleted]) error {
		got = append(got, e.Data)
		assert.Equal(t, at, e.Timestamp)
		return nil
	})

	// payload of the wrong type is skipped
	assert.NoError(t, bus.Publish(NewEvent(context.Background(), TransactionDeletedType, at, "not a payload")))
	assert.NoError(t, bus.Publish(NewEvent(context.Background(), TransactionDeletedType, at, TransactionDeleted{ID: "t-1", Found: true})))

	assert.Equal(t, []TransactionDeleted{{ID: "t-1", Found: true}}, got)
}
