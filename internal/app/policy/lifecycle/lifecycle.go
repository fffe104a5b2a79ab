// Package lifecycle is the report status state machine.
//
// Declared order: pending -> in-progress -> completed -> verified -> delivered.
// Transitions must move forward; skipping intermediate states is legal
// (pending -> completed), moving backward is not. Content edits are allowed
// only while the report is modifiable (pending or in-progress); verification
// is the one privileged transition that may act on any status.
package lifecycle

// Report status values.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusVerified   = "verified"
	StatusDelivered  = "delivered"
)

// Statuses lists every status in lifecycle order.
var Statuses = []string{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusVerified,
	StatusDelivered,
}

// rank maps each status to its position in the lifecycle.
var rank = func() map[string]int {
	m := make(map[string]int, len(Statuses))
	for i, s := range Statuses {
		m[s] = i
	}
	return m
}()

// Valid reports whether s is a declared status.
func Valid(s string) bool {
	_, ok := rank[s]
	return ok
}

// Modifiable reports whether report content may be edited in status s.
func Modifiable(s string) bool {
	return s == StatusPending || s == StatusInProgress
}

// CanTransition reports whether a status reassignment from -> to is legal:
// both statuses must be declared and the move must be strictly forward.
// Skip-transitions are allowed; the lifecycle never runs backward.
func CanTransition(from, to string) bool {
	f, ok := rank[from]
	if !ok {
		return false
	}
	t, ok := rank[to]
	if !ok {
		return false
	}
	return t > f
}
