package decoder

import (
	"fmt"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	"github.com/muhammadchandra19/hft/pkg/errors"
)

const (
	timestampGapBit   = uint64(1) << 24
	timestampMax      = uint64(1)<<49 - 1
	orderIDGapMask    = uint64(0xFFFFF000)
	unencodableFormat = "%s 0x%x cannot be represented in the register layout"
)

// Encode builds the block that Decode maps back to ev. Values the layout
// drops (timestamp bit 24, timestamps of 2^49 and above, order id bits 12..31)
// and unknown order types are rejected; every offending field is listed in
// the returned BaseError.
func Encode(ev itchv1.OrderEvent) (itchv1.Block, error) {
	baseErr := errors.NewBaseError()

	if !ev.Type.IsKnown() {
		baseErr.AddErrorDetails(unencodable("type", uint64(ev.Type)))
	}
	if ev.Timestamp&timestampGapBit != 0 || ev.Timestamp > timestampMax {
		baseErr.AddErrorDetails(unencodable("timestamp", ev.Timestamp))
	}
	if ev.OrderID&orderIDGapMask != 0 {
		baseErr.AddErrorDetails(unencodable("orderID", ev.OrderID))
	}
	if baseErr.HasDetails() {
		return itchv1.Block{}, baseErr
	}

	var block itchv1.Block
	block.SetReg(0, uint32(ev.Type)|uint32(ev.LocateCode)<<8|uint32(ev.TrackingNumber>>8)<<24)
	block.SetReg(1, uint32(ev.TrackingNumber&0xFF)|uint32(ev.Timestamp>>25)<<8)
	block.SetReg(2, uint32(ev.Timestamp&0xFFFFFF)|uint32(ev.OrderID>>56)<<24)
	block.SetReg(3, uint32(ev.OrderID>>32))
	block.SetReg(4, uint32(ev.OrderID&0xFFF)|uint32(ev.Side)<<24)
	block.SetReg(5, ev.Quantity)
	block.SetReg(6, uint32(ev.InstrumentID>>32))
	block.SetReg(7, uint32(ev.InstrumentID))
	block.SetReg(8, ev.Price)

	return block, nil
}

func unencodable(field string, value uint64) *errors.ErrorDetails {
	return errors.NewErrorDetails(
		fmt.Sprintf(unencodableFormat, field, value),
		string(errors.ErrUnencodableField),
		field,
	)
}
