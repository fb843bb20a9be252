package ports

import "time"

// Clock abstracts the current time so the order core never reads an ambient
// clock. Command handlers take a Clock and pass the instant into the domain,
// which keeps transition timestamps deterministic in tests.
type Clock interface {
	// Now returns the current time. Callers normalize to UTC.
	Now() time.Time
}
