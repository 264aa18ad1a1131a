// internal/event/event.go
package event

// Type names a simulation event.
type Type string

// Event carries one occurrence to subscribers. Data holds the payload
// (a *WaveReport, a GameOverSummary, a state snapshot) where relevant.
type Event struct {
	Type Type
	Data interface{}
}

// Listener is the interface for event subscribers.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher routes events to subscribers, synchronously and in subscription
// order. Simulation transitions fire their events inline, never batched.
type Dispatcher struct {
	listeners map[Type][]Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Type][]Listener)}
}

// Subscribe registers a listener for an event type.
func (d *Dispatcher) Subscribe(t Type, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

// Unsubscribe removes a previously registered listener.
func (d *Dispatcher) Unsubscribe(t Type, l Listener) {
	if listeners, exists := d.listeners[t]; exists {
		for i, have := range listeners {
			if have == l {
				d.listeners[t] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers an event to all subscribers.
func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
}
