package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string. ulid.Make draws from a process-wide monotonic
// entropy source, so ids minted in the same millisecond still sort in order.
func New() string {
	return ulid.Make().String()
}
