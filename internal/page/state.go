package page

// State is the controller's position in the page lifecycle.
type State int

const (
	Loading    State = iota // plan details requested
	Ready                   // snapshot cached (or load failed), regions hidden
	Invalid                 // last action was rejected before any network call
	Displaying              // summary shown, projection in flight
	Displayed               // chart rendered
	Failed                  // projection failed, regions hidden
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Invalid:
		return "invalid"
	case Displaying:
		return "displaying"
	case Displayed:
		return "displayed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// StateError is returned when the user acts before the plan details arrived.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

// ErrNotLoaded is the StateError for a submission without a cached snapshot.
var ErrNotLoaded = &StateError{Message: "portfolio analysis data is not yet loaded"}
