package geometry

// StreamState tracks the residency of one geometry buffer.
type StreamState int

const (
	// StateUnloaded means no bytes have been requested yet.
	StateUnloaded StreamState = iota
	// StateStreaming means a pipeline is open and frames are flowing.
	StateStreaming
	// StateResident means the buffer was fully delivered.
	StateResident
	// StateFailed means the last attempt ended in an error.
	StateFailed
)

// String returns the state name used in logs.
func (s StreamState) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateStreaming:
		return "streaming"
	case StateResident:
		return "resident"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
