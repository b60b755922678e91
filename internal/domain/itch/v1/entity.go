package itchv1

import "fmt"

// BlockWords is the number of 32-bit register words in one message.
const BlockWords = 9

// FrameSize is the size in bytes of one message on the wire.
const FrameSize = BlockWords * 4

// DefaultInstrumentCount is the number of instrument slots a session tracks.
const DefaultInstrumentCount = 4

// Block is one message as nine register words. Register regN is stored at
// Block[8-N]: Block[8] carries the message-type byte, Block[0] the price.
type Block [BlockWords]uint32

// Reg returns register n of the block.
func (b Block) Reg(n int) uint32 {
	return b[BlockWords-1-n]
}

// SetReg stores v into register n.
func (b *Block) SetReg(n int, v uint32) {
	b[BlockWords-1-n] = v
}

// OrderType represents the 8-bit message type code.
type OrderType uint8

const (
	// OrderTypeAdd adds a resting order to the book.
	OrderTypeAdd OrderType = 'A'
	// OrderTypeCancel removes a resting order.
	OrderTypeCancel OrderType = 'X'
	// OrderTypeExecute reports a (partial) fill of a resting order.
	OrderTypeExecute OrderType = 'E'
)

// IsKnown reports whether t is one of the three recognized codes.
func (t OrderType) IsKnown() bool {
	switch t {
	case OrderTypeAdd, OrderTypeCancel, OrderTypeExecute:
		return true
	}
	return false
}

func (t OrderType) String() string {
	switch t {
	case OrderTypeAdd:
		return "add"
	case OrderTypeCancel:
		return "cancel"
	case OrderTypeExecute:
		return "execute"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(t))
	}
}

// Side is the raw 8-bit side code. Codes other than SideBuy and SideSell are
// carried through unchanged.
type Side uint8

const (
	// SideBuy is the bid side.
	SideBuy Side = 'B'
	// SideSell is the ask side.
	SideSell Side = 'S'
)

// IsBuy checks if the side is the bid side.
func (s Side) IsBuy() bool {
	return s == SideBuy
}

// IsSell checks if the side is the ask side.
func (s Side) IsSell() bool {
	return s == SideSell
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(s))
	}
}

// OrderEvent is one decoded feed message.
type OrderEvent struct {
	Type           OrderType `json:"type"`
	LocateCode     uint16    `json:"locateCode"`
	TrackingNumber uint16    `json:"trackingNumber"`
	Timestamp      uint64    `json:"timestamp"`
	OrderID        uint64    `json:"orderID"`
	Side           Side      `json:"side"`
	Quantity       uint32    `json:"quantity"`
	InstrumentID   uint64    `json:"instrumentID"`
	Price          uint32    `json:"price"`
}
