package jobs

import (
	"sync"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
)

// pageCursor remembers where the previous run stopped so every vehicle is
// visited even when more of them qualify than fit in one batch. A short page
// means the end was reached and the next run starts over.
type pageCursor struct {
	mu    sync.Mutex
	after *kernel.UUID
}

func (c *pageCursor) position() *kernel.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.after
}

func (c *pageCursor) advance(page []*vehicle.Vehicle, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(page) < limit {
		c.after = nil
		return
	}
	last := page[len(page)-1].ID()
	c.after = &last
}
