package otel

import (
	"fmt"
	"time"

	"hotel/shared/calendar"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	AttributeRoomID   = "hotel.room.id"
	AttributeCheckIn  = "hotel.stay.check_in"
	AttributeCheckOut = "hotel.stay.check_out"
	AttributeNights   = "hotel.stay.nights"
)

type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
	// SetStay tags the span with a [checkIn, checkOut) stay. roomID may be empty for range queries.
	SetStay(roomID string, checkIn, checkOut time.Time)
}

type scopeImpl struct {
	span oteltrace.Span
}

func (s *scopeImpl) End() {
	s.span.End()
}

func (s *scopeImpl) TraceError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) AddEvent(name string) {
	s.span.AddEvent(name)
}

func (s *scopeImpl) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, toAttribute(key, value))
	}

	s.span.SetAttributes(kvs...)
}

func (s *scopeImpl) SetStay(roomID string, checkIn, checkOut time.Time) {
	kvs := []attribute.KeyValue{
		attribute.String(AttributeCheckIn, calendar.Key(checkIn)),
		attribute.String(AttributeCheckOut, calendar.Key(checkOut)),
		attribute.Int(AttributeNights, nights(checkIn, checkOut)),
	}

	if roomID != "" {
		kvs = append(kvs, attribute.String(AttributeRoomID, roomID))
	}

	s.span.SetAttributes(kvs...)
}

// toAttribute keeps calendar days as YYYY-MM-DD so spans group by stay date, not by instant.
func toAttribute(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case time.Time:
		return attribute.String(key, calendar.Key(val))
	default:
		return attribute.String(key, fmt.Sprintf("%v", val))
	}
}

func nights(checkIn, checkOut time.Time) int {
	count := 0
	for range calendar.Nights(checkIn, checkOut) {
		count++
	}

	return count
}

func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{
		span: span,
	}
}
