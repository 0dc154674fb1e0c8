package validator

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MinMonthlyInvestment is the smallest accepted monthly SIP amount (₹).
const MinMonthlyInvestment = 1000.0

// Reason explains why an input was rejected.
type Reason string

const (
	ReasonNotANumber   Reason = "not a number"
	ReasonBelowMinimum Reason = "below minimum"
)

// decimalForm is a plain decimal: sign, digits, fraction and exponent only.
var decimalForm = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Message is shown to the user for any rejected amount.
const Message = "Please enter a monthly investment amount of ₹1000 or greater."

// Result is the outcome of Validate. Value is set only when OK.
type Result struct {
	OK     bool
	Value  float64
	Reason Reason
}

// ValidationError is a rejected monthly investment amount.
type ValidationError struct {
	Input  string
	Reason Reason
}

func (e *ValidationError) Error() string {
	return "invalid monthly investment " + strconv.Quote(e.Input) + ": " + string(e.Reason)
}

// Validate parses raw as a decimal amount and checks it against the minimum.
func Validate(raw string) Result {
	s := strings.TrimSpace(raw)
	if !decimalForm.MatchString(s) {
		return Result{Reason: ReasonNotANumber}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Result{Reason: ReasonNotANumber}
	}
	if v < MinMonthlyInvestment {
		return Result{Reason: ReasonBelowMinimum}
	}
	return Result{OK: true, Value: v}
}

// Err returns nil for an accepted result, otherwise a *ValidationError for raw.
func (r Result) Err(raw string) error {
	if r.OK {
		return nil
	}
	return &ValidationError{Input: raw, Reason: r.Reason}
}
