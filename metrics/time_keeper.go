package metrics

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// TimeKeeper remembers when each kind of event was last seen.
type TimeKeeper struct {
	mu       sync.Mutex
	clock    clock.Clock
	lastSeen map[string]time.Time
}

func NewTimeKeeper(clk clock.Clock) *TimeKeeper {
	return &TimeKeeper{
		clock:    clk,
		lastSeen: make(map[string]time.Time),
	}
}

func (tk *TimeKeeper) Record(kind string) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	tk.lastSeen[kind] = tk.clock.Now()
}

// SecondsSince returns how long ago kind was last recorded, and false if it
// never was.
func (tk *TimeKeeper) SecondsSince(kind string) (float64, bool) {
	tk.mu.Lock()
	defer tk.mu.Unlock()

	t, ok := tk.lastSeen[kind]
	if !ok {
		return 0, false
	}
	return tk.clock.Since(t).Seconds(), true
}
