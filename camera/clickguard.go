package camera

import (
	"time"
)

const clickGuardDuration = 100 * time.Millisecond

// ClickGuard tells a click from the button release that ends a drag.
type ClickGuard struct {
	Now func() time.Time

	deadline time.Time
	moved    bool
}

func (c *ClickGuard) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *ClickGuard) Move() {
	c.moved = true
}

func (c *ClickGuard) DragStart() {
	c.moved = false
}

func (c *ClickGuard) DragEnd() {
	c.deadline = c.now().Add(clickGuardDuration)
}

func (c *ClickGuard) Click() bool {
	return c.deadline.IsZero() || !c.moved || c.deadline.Before(c.now())
}
