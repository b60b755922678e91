package decoder

import (
	"encoding/binary"
	"fmt"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	"github.com/muhammadchandra19/hft/pkg/errors"
)

// ParseFrame reads a 36-byte wire frame into a block. Word i is the
// little-endian uint32 at offset 4*i and lands in block[i].
func ParseFrame(b []byte) (itchv1.Block, error) {
	var block itchv1.Block
	if len(b) != itchv1.FrameSize {
		return block, errors.NewErrorDetails(
			fmt.Sprintf("frame is %d bytes, want %d", len(b), itchv1.FrameSize),
			string(errors.ErrMalformedFrame),
			"frame",
		)
	}

	for i := range block {
		block[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return block, nil
}

// MarshalFrame is the inverse of ParseFrame.
func MarshalFrame(block itchv1.Block) []byte {
	b := make([]byte, itchv1.FrameSize)
	for i, word := range block {
		binary.LittleEndian.PutUint32(b[i*4:], word)
	}
	return b
}
