package errors

import (
	"bytes"
	"reflect"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"

	// ErrUnrecognizedOrderType is returned by the decoder when the message-type byte is not a known code.
	ErrUnrecognizedOrderType ErrorCode = "unrecognized_order_type"
	// ErrInvalidOrderType is returned by the session when an event carries a type it cannot dispatch.
	ErrInvalidOrderType ErrorCode = "invalid_order_type"
	// ErrInvalidInstrumentIndex is returned when an instrument index falls outside the configured slots.
	ErrInvalidInstrumentIndex ErrorCode = "invalid_instrument_index"
	// ErrMalformedFrame is returned when a raw frame does not carry exactly nine register words.
	ErrMalformedFrame ErrorCode = "malformed_frame"
	// ErrUnencodableField is returned when a field value cannot be represented in the register layout.
	ErrUnencodableField ErrorCode = "unencodable_field"

	// ErrOrderNotFound is returned by the order book when an order id is not resting on the book.
	ErrOrderNotFound ErrorCode = "order_not_found"
	// ErrNoLiquidity is returned when the requested side of the book is empty.
	ErrNoLiquidity ErrorCode = "no_liquidity"
	// ErrDuplicateOrder is returned when an order id is added twice.
	ErrDuplicateOrder ErrorCode = "duplicate_order"
	// ErrInvalidOrder is returned when an order carries a zero size, zero price or unknown side.
	ErrInvalidOrder ErrorCode = "invalid_order"

	// ErrQuotePublish is returned when a quote could not be delivered to a sink.
	ErrQuotePublish ErrorCode = "quote_publish_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// BaseError is an `error` type containing an array of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether any ErrorDetails were collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("; object: ")
		if err.Object != nil {
			buff.WriteString(reflect.TypeOf(err.Object).String())
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// IsAllCodeEqual check if all ErrorDetails code is equal with given code
func (b *BaseError) IsAllCodeEqual(code string) bool {
	if len(b.details) == 0 {
		return false
	}

	for _, d := range b.GetDetails() {
		if d.Code != code {
			return false
		}
	}
	return true
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Fields returns the field names of all ErrorDetails in order.
func (b *BaseError) Fields() []string {
	fields := make([]string, 0, len(b.details))
	for _, d := range b.details {
		fields = append(fields, d.Field)
	}
	return fields
}
