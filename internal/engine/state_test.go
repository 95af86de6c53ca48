package engine

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateBuffering, "Buffering"},
		{StateReady, "Ready"},
		{StateEnded, "Ended"},
		{StateUnknown, "Unknown"},
		{State(99), "Unknown"},
		{State(-1), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, true},
		{StateBuffering, false},
		{StateReady, false},
		{StateEnded, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.want {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObserverList_AddRemove(t *testing.T) {
	a := &ObserverFuncs{}
	b := &ObserverFuncs{}

	var l observerList
	l = l.add(a)
	l = l.add(a)
	l = l.add(b)
	if len(l) != 2 {
		t.Fatalf("len = %d, want 2 (duplicates ignored)", len(l))
	}

	snapshot := l
	l = l.remove(a)
	if len(l) != 1 || l[0] != Observer(b) {
		t.Errorf("after remove = %v, want [b]", l)
	}
	if len(snapshot) != 2 {
		t.Error("remove must not mutate earlier snapshots")
	}
}

func TestObserverFuncs_NilFieldsIgnored(t *testing.T) {
	var o ObserverFuncs
	o.OnStateChanged(StateReady)
	o.OnPlayerError(nil)
}
