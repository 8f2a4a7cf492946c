package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/booking/repository"
)

func TestOverlapping(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantArgs []any
	}{
		{
			name:     "utc dates",
			start:    time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC),
			wantArgs: []any{"2024-07-12", "2024-07-10"},
		},
		{
			name:     "offset keeps the written day",
			start:    time.Date(2024, 7, 10, 0, 30, 0, 0, jakarta),
			end:      time.Date(2024, 7, 11, 0, 30, 0, 0, jakarta),
			wantArgs: []any{"2024-07-11", "2024-07-10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := repository.Overlapping(tt.start, tt.end).ToSql()

			assert.NoError(t, err)
			assert.Equal(t, "(bookings.start_date < ?::date AND bookings.end_date > ?::date)", query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
