package volatility

import (
	"fmt"

	"github.com/muhammadchandra19/hft/pkg/errors"
)

// Estimator keeps one buffer of mid prices per instrument slot and reports
// the population variance of each buffer. It is not safe for concurrent use.
type Estimator struct {
	buffers []buffer
}

// buffer tracks samples for one instrument.
//
// Unbounded buffers keep shifted running sums (shift = first sample) so a
// variance read is O(1). Windowed buffers keep the last len(ring) samples and
// compute the variance over them directly, shifted by a retained sample.
type buffer struct {
	count int

	shift float64
	sum   float64
	sumSq float64

	ring []float64
	head int
}

// NewEstimator creates an estimator with the given number of instrument slots.
// window bounds each buffer to the most recent samples; window <= 0 keeps
// every sample.
func NewEstimator(instruments, window int) *Estimator {
	buffers := make([]buffer, instruments)
	if window > 0 {
		for i := range buffers {
			buffers[i].ring = make([]float64, window)
		}
	}
	return &Estimator{buffers: buffers}
}

// Observe appends mid to the buffer of the given slot.
func (e *Estimator) Observe(index int, mid float64) error {
	b, err := e.buffer(index)
	if err != nil {
		return err
	}
	b.observe(mid)
	return nil
}

// Variance returns the population variance of the slot's buffer. Empty and
// single-sample buffers report 0.
func (e *Estimator) Variance(index int) (float64, error) {
	b, err := e.buffer(index)
	if err != nil {
		return 0, err
	}
	return b.variance(), nil
}

// Len returns the number of samples currently retained for the slot.
func (e *Estimator) Len(index int) (int, error) {
	b, err := e.buffer(index)
	if err != nil {
		return 0, err
	}
	return b.count, nil
}

// Instruments returns the number of slots.
func (e *Estimator) Instruments() int {
	return len(e.buffers)
}

func (e *Estimator) buffer(index int) (*buffer, error) {
	if index < 0 || index >= len(e.buffers) {
		return nil, errors.NewErrorDetailsWithObject(
			fmt.Sprintf("instrument index %d outside [0, %d)", index, len(e.buffers)),
			string(errors.ErrInvalidInstrumentIndex),
			"index",
			index,
		)
	}
	return &e.buffers[index], nil
}

func (b *buffer) observe(x float64) {
	if b.ring != nil {
		b.ring[b.head] = x
		b.head = (b.head + 1) % len(b.ring)
		if b.count < len(b.ring) {
			b.count++
		}
		return
	}

	if b.count == 0 {
		b.shift = x
	}
	d := x - b.shift
	b.sum += d
	b.sumSq += d * d
	b.count++
}

func (b *buffer) variance() float64 {
	if b.count < 2 {
		return 0
	}

	if b.ring != nil {
		return b.windowVariance()
	}

	n := float64(b.count)
	v := (b.sumSq - b.sum*b.sum/n) / n
	if v < 0 {
		return 0
	}
	return v
}

// windowVariance computes mean then squared deviations over the retained
// samples, both taken relative to the first retained sample so a constant
// window reports exactly 0. Until the ring fills, the samples occupy
// ring[:count].
func (b *buffer) windowVariance() float64 {
	samples := b.ring[:b.count]
	shift := samples[0]

	mean := 0.0
	for _, x := range samples {
		mean += x - shift
	}
	mean /= float64(len(samples))

	v := 0.0
	for _, x := range samples {
		d := x - shift - mean
		v += d * d
	}
	return v / float64(len(samples))
}
