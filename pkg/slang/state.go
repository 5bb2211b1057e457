package slang

// StateType represents the current state of a translation session.
type StateType int

const (
	// StateIdle indicates no request is in flight.
	StateIdle StateType = iota
	// StateRecording indicates voice input is being captured. It is a
	// parallel input state: entering it cancels any pending auto-submit.
	StateRecording
	// StateTranslating indicates translation text is streaming in.
	StateTranslating
	// StateLoading indicates the translation text is complete and the
	// audio/metadata asset tasks are running.
	StateLoading
	// StateSuccess indicates the active record has been committed.
	StateSuccess
	// StateError indicates the active request failed with no usable text.
	StateError
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateTranslating:
		return "translating"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// IsActive returns true while a request is being worked on.
func (s StateType) IsActive() bool {
	return s == StateTranslating || s == StateLoading
}

// StateMachine manages session state transitions.
type StateMachine struct {
	current     StateType
	transitions map[StateType][]StateType
	onEnter     map[StateType]func()
}

// NewStateMachine creates a state machine with the valid transitions.
// Every settled state may start a new translation; the two active states
// may fall into the absorbing error state.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateIdle,
		transitions: map[StateType][]StateType{
			StateIdle:        {StateRecording, StateTranslating},
			StateRecording:   {StateIdle, StateTranslating},
			StateTranslating: {StateTranslating, StateLoading, StateSuccess, StateError},
			StateLoading:     {StateTranslating, StateSuccess, StateError},
			StateSuccess:     {StateRecording, StateTranslating, StateIdle},
			StateError:       {StateRecording, StateTranslating, StateIdle},
		},
		onEnter: make(map[StateType]func()),
	}
}

// Transition attempts to move to the given state, reporting whether the
// transition was valid.
func (sm *StateMachine) Transition(to StateType) bool {
	valid := false
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}
	sm.current = to
	if fn, ok := sm.onEnter[to]; ok && fn != nil {
		fn()
	}
	return true
}

// Current returns the current state.
func (sm *StateMachine) Current() StateType {
	return sm.current
}

// OnEnter registers a callback invoked after entering a state.
func (sm *StateMachine) OnEnter(state StateType, fn func()) {
	sm.onEnter[state] = fn
}
