package events

// Subscriber consumes broker events. Implementations adapt events to one
// transport and must not block in Send. Subscribers are compared by
// identity, so implementations should be pointer types.
type Subscriber interface {
	Send(Event) error
	Close() error
}
