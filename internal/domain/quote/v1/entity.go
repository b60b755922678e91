package quotev1

import (
	"encoding/json"
	"strconv"
	"time"

	itchv1 "github.com/muhammadchandra19/hft/internal/domain/itch/v1"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// DefaultPricePrecision is the number of decimal places kept on the wire.
const DefaultPricePrecision int32 = 6

// Quote is the output of one processed feed event.
type Quote struct {
	InstrumentID uint64           `json:"instrumentID"`
	Index        int              `json:"index"`
	EventType    itchv1.OrderType `json:"eventType"`
	OrderID      uint64           `json:"orderID"`
	Timestamp    uint64           `json:"timestamp"`
	Side         itchv1.Side      `json:"side"`
	Size         float64          `json:"size"`
	Price        float64          `json:"price"`
	Bid          float64          `json:"bid"`
	Ask          float64          `json:"ask"`
	Mid          float64          `json:"mid"`
	Volatility   float64          `json:"volatility"`
	Inventory    float64          `json:"inventory"`
}

// Payload is the wire form of a quote. Prices travel as decimal strings.
type Payload struct {
	ID           string          `json:"id"`
	InstrumentID uint64          `json:"instrumentID"`
	Side         string          `json:"side"`
	Size         decimal.Decimal `json:"size"`
	Price        decimal.Decimal `json:"price"`
	Bid          decimal.Decimal `json:"bid"`
	Ask          decimal.Decimal `json:"ask"`
	Mid          decimal.Decimal `json:"mid"`
	Inventory    decimal.Decimal `json:"inventory"`
	FeedTime     uint64          `json:"feedTime"`
	CreatedAt    int64           `json:"createdAt"`
}

// NewPayload converts q to its wire form, rounding prices to precision places.
func NewPayload(q *Quote, precision int32) *Payload {
	round := func(v float64) decimal.Decimal {
		return decimal.NewFromFloat(v).Round(precision)
	}

	return &Payload{
		ID:           ulid.Make().String(),
		InstrumentID: q.InstrumentID,
		Side:         q.Side.String(),
		Size:         round(q.Size),
		Price:        round(q.Price),
		Bid:          round(q.Bid),
		Ask:          round(q.Ask),
		Mid:          round(q.Mid),
		Inventory:    round(q.Inventory),
		FeedTime:     q.Timestamp,
		CreatedAt:    time.Now().UnixNano(),
	}
}

// Key returns the partition key used for the quote. Quotes for one
// instrument share a partition so consumers see them in order.
func (p *Payload) Key() []byte {
	return []byte(strconv.FormatUint(p.InstrumentID, 10))
}

// ToBytes converts the payload to a byte array.
func ToBytes(payload *Payload) []byte {
	json, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	return json
}

// FromBytes converts a byte array to a payload.
func FromBytes(data []byte) *Payload {
	var payload Payload
	err := json.Unmarshal(data, &payload)
	if err != nil {
		return nil
	}
	return &payload
}
