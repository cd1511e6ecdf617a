package engine

import "time"

// Option configures a Check before it runs.
type Option func(*config)

type config struct {
	reactionTime       int64
	timeOutSeconds     int64
	propagationOnlyToZ bool
	cleaned            bool
	withNodeLabels     bool
	withUnknown        bool
	horizon            *int64
}

func defaultConfig() config {
	return config{
		withNodeLabels: true,
		withUnknown:    true,
	}
}

// WithReactionTime sets the minimum delay between observation and
// reaction. R0 and R3 fire only on entries whose value is at most
// -reactionTime; with the default of 0 that is every non-positive entry.
func WithReactionTime(t int64) Option {
	return func(c *config) { c.reactionTime = t }
}

// WithTimeout sets a wall-clock cap in seconds; on expiry the engine halts
// with Status.Timeout=true, Status.Finished=false.
func WithTimeout(seconds int64) Option {
	return func(c *config) { c.timeOutSeconds = seconds }
}

// WithPropagationOnlyToZ restricts labeled propagation to edges ending at
// Z: sound and faster, since only Z-directed distances are needed to
// decide consistency.
func WithPropagationOnlyToZ() Option {
	return func(c *config) { c.propagationOnlyToZ = true }
}

// WithCleaned requests that the returned graph have empty-payload edges
// and unknown-literal label entries removed before being handed back.
func WithCleaned() Option {
	return func(c *config) { c.cleaned = true }
}

// WithNodeLabels governs whether initialization adds, for every node X with
// a non-empty label, the CSTN bounds Z->X:(horizon,⊡) and X->Z:(0,label(X));
// the legacy behavior (false) skips them. The propagation rules do not
// consult node labels under either setting.
func WithNodeLabels(enabled bool) Option {
	return func(c *config) { c.withNodeLabels = enabled }
}

// WithUnknown governs whether conjunctionExtended may introduce unknown
// literals during propagation.
func WithUnknown(enabled bool) Option {
	return func(c *config) { c.withUnknown = enabled }
}

// WithHorizon overrides the computed horizon.
func WithHorizon(horizon int64) Option {
	return func(c *config) { c.horizon = &horizon }
}

// Status reports the outcome of a Check.
type Status struct {
	Consistency bool
	Finished    bool
	Timeout     bool

	Cycles                       int
	PropagationCalls             int
	R0Calls                      int
	R3Calls                      int
	LabeledValuePropagationCalls int

	// NegativeLoopNode names the node of the negative self-loop that made
	// the run inconsistent; it is set only when Consistency is false.
	// WitnessCycle is not filled in by Run and stays nil.
	NegativeLoopNode string
	WitnessCycle     []string

	Elapsed time.Duration
}
