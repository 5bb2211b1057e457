package slang

import "testing"

func TestStateMachineHappyPath(t *testing.T) {
	sm := NewStateMachine()
	for _, st := range []StateType{StateTranslating, StateLoading, StateSuccess} {
		if !sm.Transition(st) {
			t.Fatalf("transition to %s rejected from %s", st, sm.Current())
		}
	}
	if sm.Current() != StateSuccess {
		t.Errorf("Current() = %s, want success", sm.Current())
	}
}

func TestStateMachineRejectsInvalid(t *testing.T) {
	sm := NewStateMachine()
	if sm.Transition(StateLoading) {
		t.Error("idle must not jump straight to loading")
	}
	if sm.Current() != StateIdle {
		t.Errorf("rejected transition moved state to %s", sm.Current())
	}
}

func TestStateMachineErrorFromActiveStates(t *testing.T) {
	for _, from := range []StateType{StateTranslating, StateLoading} {
		sm := NewStateMachine()
		sm.Transition(StateTranslating)
		if from == StateLoading {
			sm.Transition(StateLoading)
		}
		if !sm.Transition(StateError) {
			t.Errorf("error not reachable from %s", from)
		}
	}
}

func TestStateMachineRecordingCancelsIntoTranslating(t *testing.T) {
	sm := NewStateMachine()
	if !sm.Transition(StateRecording) {
		t.Fatal("idle -> recording rejected")
	}
	if !sm.Transition(StateTranslating) {
		t.Fatal("recording -> translating rejected")
	}
}

func TestStateMachineOnEnter(t *testing.T) {
	sm := NewStateMachine()
	entered := false
	sm.OnEnter(StateTranslating, func() { entered = true })
	sm.Transition(StateTranslating)
	if !entered {
		t.Error("OnEnter hook not invoked")
	}
}

func TestIsActive(t *testing.T) {
	active := map[StateType]bool{
		StateIdle:        false,
		StateRecording:   false,
		StateTranslating: true,
		StateLoading:     true,
		StateSuccess:     false,
		StateError:       false,
	}
	for st, want := range active {
		if got := st.IsActive(); got != want {
			t.Errorf("%s.IsActive() = %v, want %v", st, got, want)
		}
	}
}
