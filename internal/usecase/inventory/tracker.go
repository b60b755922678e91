package inventory

import (
	"fmt"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	"github.com/muhammadchandra19/hft/pkg/errors"
)

const (
	// MaxInventorySize normalizes filled quantity into an inventory fraction.
	MaxInventorySize = 10000
	// OwnOrderIDLimit bounds the order ids this desk issues. Executions of ids
	// at or above it belong to other participants and leave inventory alone.
	OwnOrderIDLimit uint64 = 1 << 29
)

// Tracker holds a signed, normalized inventory per instrument slot. It is not
// safe for concurrent use.
type Tracker struct {
	inventory []float64
}

// NewTracker creates a tracker with every slot at zero.
func NewTracker(instruments int) *Tracker {
	return &Tracker{inventory: make([]float64, instruments)}
}

// Update applies one execution to the slot and returns the resulting value.
// Buys add quantity/MaxInventorySize, sells subtract it, and any other side
// leaves the value unchanged. Replaying an execution counts it twice.
func (t *Tracker) Update(index int, orderID uint64, quantity uint32, side itchv1.Side) (float64, error) {
	if err := t.checkIndex(index); err != nil {
		return 0, err
	}

	if orderID >= OwnOrderIDLimit {
		return t.inventory[index], nil
	}

	delta := float64(quantity) / MaxInventorySize
	switch side {
	case itchv1.SideBuy:
		t.inventory[index] += delta
	case itchv1.SideSell:
		t.inventory[index] -= delta
	}

	return t.inventory[index], nil
}

// Current returns the slot's inventory without changing it.
func (t *Tracker) Current(index int) (float64, error) {
	if err := t.checkIndex(index); err != nil {
		return 0, err
	}
	return t.inventory[index], nil
}

func (t *Tracker) checkIndex(index int) error {
	if index < 0 || index >= len(t.inventory) {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("instrument index %d outside [0, %d)", index, len(t.inventory)),
			string(errors.ErrInvalidInstrumentIndex),
			"index",
			index,
		)
	}
	return nil
}
