package engine

// Observer receives engine state changes. Callbacks may arrive on engine
// goroutines and must not block.
type Observer interface {
	OnStateChanged(state State)
	OnPlayerError(err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are ignored.
// Use a pointer so AddObserver/RemoveObserver can match it by identity.
type ObserverFuncs struct {
	StateChanged func(State)
	PlayerError  func(error)
}

func (o *ObserverFuncs) OnStateChanged(s State) {
	if o.StateChanged != nil {
		o.StateChanged(s)
	}
}

func (o *ObserverFuncs) OnPlayerError(err error) {
	if o.PlayerError != nil {
		o.PlayerError(err)
	}
}

// observerList is a copy-on-write observer set shared by the engines.
type observerList []Observer

func (l observerList) add(o Observer) observerList {
	for _, existing := range l {
		if existing == o {
			return l
		}
	}
	out := make(observerList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, o)
}

func (l observerList) remove(o Observer) observerList {
	out := make(observerList, 0, len(l))
	for _, existing := range l {
		if existing != o {
			out = append(out, existing)
		}
	}
	return out
}
