package quiz

import (
	"math/rand"
	"sync"
	"time"
)

// Clock supplies the current time to the settle state machine.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Shuffler permutes n items through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// lockedRand lets one seeded source serve many sessions.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// NewShuffler returns a goroutine-safe shuffler. A zero seed draws one from
// the clock, so only a non-zero seed gives reproducible orderings.
func NewShuffler(seed int64) Shuffler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}
