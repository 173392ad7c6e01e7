package release

import "encoding/json"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Result is the outcome of one orchestration step. Business failures are
// reported with OK=false; transport failures are returned as errors instead.
type Result[T any] struct {
	OK      bool
	Message string
	Data    T

	hasData bool
}

// Succeed returns a successful result carrying data
func Succeed[T any](message string, data T) Result[T] {
	return Result[T]{OK: true, Message: message, Data: data, hasData: true}
}

// Fail returns a failed result without data
func Fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// FailWith returns a failed result that still carries the upstream payload
func FailWith[T any](message string, data T) Result[T] {
	return Result[T]{Message: message, Data: data, hasData: true}
}

// resultJSON keeps the success and status keys older consumers of the
// webhook read alongside ok.
type resultJSON struct {
	OK      bool   `json:"ok"`
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		OK:      r.OK,
		Success: r.OK,
		Status:  statusError,
		Message: r.Message,
	}
	if r.OK {
		out.Status = statusSuccess
	}
	if r.hasData {
		out.Data = r.Data
	}
	return json.Marshal(out)
}

// MergeDecision is the outcome of a mergeability check
type MergeDecision struct {
	Mergeable bool   `json:"status"`
	Message   string `json:"message"`
}
