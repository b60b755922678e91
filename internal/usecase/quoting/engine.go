package quoting

const (
	// SpreadCoefficient scales volatility * timestamp into the half spread
	// and the inventory skew.
	SpreadCoefficient = 0.125
	// ShapeParameter scales inventory into order size.
	ShapeParameter = 0.005
	// SizeMultiplier converts the shaped inventory into a quantity.
	SizeMultiplier = 100
)

// VolatilitySource records mid prices and reports their variance per
// instrument slot.
type VolatilitySource interface {
	Observe(index int, mid float64) error
	Variance(index int) (float64, error)
}

// Prices holds every intermediate value of one quote computation.
type Prices struct {
	Mid        float64 `json:"mid"`
	Volatility float64 `json:"volatility"`
	Spread     float64 `json:"spread"`
	Reference  float64 `json:"reference"`
	Bid        float64 `json:"bid"`
	Ask        float64 `json:"ask"`
}

// Engine computes inventory-skewed bid and ask prices.
type Engine struct {
	volatility VolatilitySource
}

// NewEngine creates a quoting engine reading volatility from source.
func NewEngine(source VolatilitySource) *Engine {
	return &Engine{volatility: source}
}

// Quote records the mid of bestBid and bestAsk into the slot's volatility
// buffer, then prices against the updated variance. Calling Quote twice with
// the same inputs records two samples.
func (e *Engine) Quote(timestamp uint64, bestBid, bestAsk float64, index int, inventory float64) (Prices, error) {
	mid := (bestBid + bestAsk) / 2

	if err := e.volatility.Observe(index, mid); err != nil {
		return Prices{}, err
	}

	volatility, err := e.volatility.Variance(index)
	if err != nil {
		return Prices{}, err
	}

	return Price(timestamp, mid, volatility, inventory), nil
}

// Price computes a quote from an already known mid and volatility. The
// timestamp is used as-is in feed units.
func Price(timestamp uint64, mid, volatility, inventory float64) Prices {
	scaled := SpreadCoefficient * volatility * float64(timestamp)
	reference := mid - inventory*scaled

	return Prices{
		Mid:        mid,
		Volatility: volatility,
		Spread:     scaled,
		Reference:  reference,
		Bid:        reference - scaled,
		Ask:        reference + scaled,
	}
}

// OrderSize returns the quote quantity for the given inventory.
func OrderSize(inventory float64) float64 {
	return SizeMultiplier * ShapeParameter * inventory
}
