package insight

import "time"

// Insight is the structured analysis returned by the AI collaborator. It is
// transient session state and is never persisted.
type Insight struct {
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

// State is the lifecycle of a single analysis request:
// Idle -> Pending -> {Resolved, Failed}. Failed is terminal but retryable.
type State string

const (
	StateIdle     State = "idle"
	StatePending  State = "pending"
	StateResolved State = "resolved"
	StateFailed   State = "failed"
)

// Status is the externally visible view of the requestor.
type Status struct {
	State     State     `json:"state"`
	Insight   *Insight  `json:"insight,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
