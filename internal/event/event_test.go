package event_test

import (
	"testing"

	"github.com/lanwarden/lanwarden/internal/event"
	"github.com/magiconair/properties/assert"
)

func TestEventManager(t *testing.T) {
	t.Run("registers event listener and publishes matching events", func(st *testing.T) {
		manager := event.NewEventManager()

		listener := make(chan event.Event, 2)

		manager.RegisterListener(event.DeviceConnected, listener)

		manager.Publish(event.ScanStarted, event.ScanStartedPayload{
			SessionID: 1,
			Subnet:    "192.168.1.0/24",
		})

		manager.Publish(event.DeviceConnected, event.DeviceConnectedPayload{
			DeviceID: 2,
			MAC:      "aa:bb:cc:dd:ee:ff",
			IP:       "192.168.1.2",
		})

		result := <-listener

		assert.Equal(st, result.Type, event.DeviceConnected)
	})

	t.Run("wildcard listener receives every event type", func(st *testing.T) {
		manager := event.NewEventManager()

		listener := make(chan event.Event, 3)

		manager.RegisterListener(event.AnyEventType, listener)

		manager.Publish(event.ScanStarted, event.ScanStartedPayload{SessionID: 1})
		manager.Publish(event.DeviceNew, event.DeviceNewPayload{DeviceID: 9})
		manager.Publish(event.ScanCompleted, event.ScanCompletedPayload{SessionID: 1})

		first := <-listener
		second := <-listener
		third := <-listener

		assert.Equal(st, first.Type, event.ScanStarted)
		assert.Equal(st, second.Type, event.DeviceNew)
		assert.Equal(st, third.Type, event.ScanCompleted)
	})

	t.Run("removes event listener", func(st *testing.T) {
		manager := event.NewEventManager()

		listener := make(chan event.Event, 1)

		id := manager.RegisterListener(event.AnyEventType, listener)

		removedID := manager.RemoveListener(id)

		assert.Equal(st, removedID, id)

		manager.Publish(event.ScanStarted, event.ScanStartedPayload{SessionID: 1})

		assert.Equal(st, len(listener), 0)
	})

	t.Run("stamps published events with id and timestamp", func(st *testing.T) {
		manager := event.NewEventManager()

		listener := make(chan event.Event, 1)

		manager.RegisterListener(event.ScanFailed, listener)

		manager.Publish(event.ScanFailed, event.ScanFailedPayload{
			SessionID: 4,
			Error:     "boom",
		})

		result := <-listener

		assert.Equal(st, result.ID != "", true)
		assert.Equal(st, result.Timestamp.IsZero(), false)
	})
}
