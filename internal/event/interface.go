package event

//go:generate mockgen -destination=../mock/event/mock_event.go -package=mock_event . Manager

// Manager interface for publishing events and managing subscriptions
type Manager interface {
	RegisterListener(eventType EventType, channel chan Event) int
	RemoveListener(id int) int
	Publish(eventType EventType, payload any)
	Send(evt Event)
}
