package client

// FetchError is returned when the plan details could not be loaded.
type FetchError struct {
	Message string
	Remote  bool // the backend answered with success=false
	Err     error
}

func (e *FetchError) Error() string {
	if e.Remote {
		return "plan details: " + e.Message
	}
	if e.Err != nil {
		return "plan details: " + e.Message + ": " + e.Err.Error()
	}
	return "plan details: " + e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// CalculationError is returned when a projection request fails.
type CalculationError struct {
	Message string
	Remote  bool
	Err     error
}

func (e *CalculationError) Error() string {
	if e.Remote {
		return "calculation: " + e.Message
	}
	if e.Err != nil {
		return "calculation: " + e.Message + ": " + e.Err.Error()
	}
	return "calculation: " + e.Message
}

func (e *CalculationError) Unwrap() error { return e.Err }
