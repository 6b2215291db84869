package sdk

import (
	"fmt"
	"strconv"
	"sync"
)

// Clock exposes the external block counter. The contract only ever reads it.
type Clock interface {
	BlockHeight() uint64
}

// ManualClock is an in-memory counter tests push forward by hand.
type ManualClock struct {
	mu     sync.RWMutex
	height uint64
}

func NewManualClock(height uint64) *ManualClock {
	return &ManualClock{height: height}
}

func (c *ManualClock) BlockHeight() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.height
}

// Set jumps to an absolute height. Going backwards is refused.
func (c *ManualClock) Set(height uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if height < c.height {
		return fmt.Errorf("clock cannot move backwards from %d to %d", c.height, height)
	}
	c.height = height
	return nil
}

// Advance mines n blocks and returns the new height.
func (c *ManualClock) Advance(n uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height += n
	return c.height
}

const clockKey = "host:block"

// StateClock keeps the height in the host State so separate CLI runs share one chain.
type StateClock struct {
	st State
}

func NewStateClock(st State) *StateClock {
	return &StateClock{st: st}
}

// BlockHeight returns 0 when nothing has been mined yet or the stored value is unreadable.
// Callers that must tell a fault from genesis use Height.
func (c *StateClock) BlockHeight() uint64 {
	h, _ := c.Height()
	return h
}

// Height is BlockHeight with the storage error surfaced.
func (c *StateClock) Height() (uint64, error) {
	ptr, err := c.st.Get(clockKey)
	if err != nil {
		return 0, err
	}
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	return strconv.ParseUint(*ptr, 10, 64)
}

// Mine advances the persisted height by n blocks.
func (c *StateClock) Mine(n uint64) (uint64, error) {
	h, err := c.Height()
	if err != nil {
		return 0, err
	}
	h += n
	if err := SetObject(c.st, clockKey, strconv.FormatUint(h, 10)); err != nil {
		return 0, err
	}
	return h, nil
}
