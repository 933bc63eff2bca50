package quota

import (
	"context"
	"time"
)

// CodeExceeded marks a request rejected by the daily ceiling.
const CodeExceeded = "quota_exceeded"

// Config wires runtime settings for the daily quota guard.
type Config struct {
	DailyLimit int
	Location   *time.Location
}

// Decision is the outcome of a single check-and-increment.
type Decision struct {
	Admitted bool
	Count    int
}

// Store holds the (day, count) pair. Admit must reset the counter when day differs from
// the stored day, refuse without incrementing once count reaches ceiling, and otherwise
// increment, all as one atomic step.
type Store interface {
	Admit(ctx context.Context, day string, ceiling int) (Decision, error)
}
