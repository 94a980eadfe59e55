package filter

import "fmt"

// ShapeError reports a buffer whose dimensions or channel count are invalid.
type ShapeError struct {
	Width    int
	Height   int
	Channels int
	Reason   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid buffer shape %dx%dx%d: %s", e.Width, e.Height, e.Channels, e.Reason)
}

// ParameterError reports an operator parameter outside its accepted range.
type ParameterError struct {
	Operator string
	Param    string
	Value    float64
	Reason   string
}

func (e *ParameterError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %s", e.Operator, e.Reason)
	}
	return fmt.Sprintf("%s: invalid %s %g: %s", e.Operator, e.Param, e.Value, e.Reason)
}

// WarningDegenerateResult is the Warning code emitted when edge normalization
// finds a maximum of zero and the output is all zero.
const WarningDegenerateResult = "degenerate_result"

// Warning describes a non-fatal condition encountered while applying an operator.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func paramErr(op, param string, v float64, reason string) *ParameterError {
	return &ParameterError{Operator: op, Param: param, Value: v, Reason: reason}
}
