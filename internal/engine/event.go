package engine

// EventWithArg fans one value out to every registered listener. Listeners run
// synchronously on the goroutine calling Invoke, in registration order, so a listener
// may safely read and mutate the entities carried in the value.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener ignores nil callbacks.
func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback != nil {
		e.listeners = append(e.listeners, callback)
	}
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}
