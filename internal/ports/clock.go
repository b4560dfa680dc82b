package ports

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

func SystemClock() Clock {
	return clockwork.NewRealClock()
}
