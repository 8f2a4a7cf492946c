package kafka_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/kafka"
)

type bookingEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"bookingId"`
}

func TestMessageEncodesValueAsJSON(t *testing.T) {
	message := kafka.Message{
		Key:   "room-101",
		Value: bookingEvent{Type: "booking.created", BookingID: "b-1"},
	}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("room-101"), msg.Key)

	var decoded bookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "booking.created", decoded.Type)
	assert.Equal(t, "b-1", decoded.BookingID)
}

func TestMessageUnsupportedValue(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNewDisabledDropsMessages(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), "hotel.bookings", kafka.Message{Key: "k", Value: 1}))
	assert.NoError(t, client.Close())
}
