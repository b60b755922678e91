package decoder

import (
	"fmt"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	"github.com/muhammadchandra19/hft/pkg/errors"
)

// Decode extracts an OrderEvent from the nine register words of a block.
//
// Field layout (regN = block[8-N]):
//
//	type     reg0[7:0]
//	locate   reg0[23:8]
//	tracking reg0[31:24] << 8 | reg1[7:0]
//	ts       reg1[31:8] << 25 | reg2[23:0]
//	orderID  reg2[31:24] << 56 | reg3 << 32 | reg4[11:0]
//	side     reg4[31:24]
//	qty      reg5
//	inst     reg6 << 32 | reg7
//	price    reg8
//
// Timestamp bit 24 and order id bits 12..31 are never populated. The only
// failure is an unrecognized message-type byte.
func Decode(block itchv1.Block) (itchv1.OrderEvent, error) {
	reg0 := block.Reg(0)
	reg1 := block.Reg(1)
	reg2 := block.Reg(2)
	reg4 := block.Reg(4)

	orderType := itchv1.OrderType(reg0 & 0xFF)
	if !orderType.IsKnown() {
		return itchv1.OrderEvent{}, errors.NewErrorDetailsWithObject(
			fmt.Sprintf("order type 0x%02x is not recognized", uint8(orderType)),
			string(errors.ErrUnrecognizedOrderType),
			"type",
			block,
		)
	}

	return itchv1.OrderEvent{
		Type:           orderType,
		LocateCode:     uint16((reg0 >> 8) & 0xFFFF),
		TrackingNumber: uint16(((reg0>>24)&0xFF)<<8 | (reg1 & 0xFF)),
		Timestamp:      uint64((reg1>>8)&0xFFFFFF)<<25 | uint64(reg2&0xFFFFFF),
		OrderID:        uint64((reg2>>24)&0xFF)<<56 | uint64(block.Reg(3))<<32 | uint64(reg4&0xFFF),
		Side:           itchv1.Side((reg4 >> 24) & 0xFF),
		Quantity:       block.Reg(5),
		InstrumentID:   uint64(block.Reg(6))<<32 | uint64(block.Reg(7)),
		Price:          block.Reg(8),
	}, nil
}
