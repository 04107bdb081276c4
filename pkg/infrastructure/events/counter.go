package events

import "sync"

// Counter tallies appended events per type
type Counter struct {
	mutex  sync.Mutex
	counts map[string]int
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

var _ EventHandler = (*Counter)(nil)

func (c *Counter) Handle(event Event) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.counts[event.Type()]++
	return nil
}

func (c *Counter) CanHandle(eventType string) bool {
	return eventType != ""
}

// Counts returns a copy of the tallies
func (c *Counter) Counts() map[string]int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	counts := make(map[string]int, len(c.counts))
	for eventType, n := range c.counts {
		counts[eventType] = n
	}
	return counts
}
