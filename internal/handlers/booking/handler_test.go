package booking_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	availabilityMocks "hotel/internal/domains/availability/service/mocks"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	bookingMocks "hotel/internal/domains/booking/service/mocks"
	handler "hotel/internal/handlers/booking"
	gDto "hotel/shared/dto"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const validBody = `{
	"roomId": "5b7f6a7e-2b1c-4d3e-9f10-1a2b3c4d5e6f",
	"startDate": "2024-07-10",
	"endDate": "2024-07-12",
	"totalPrice": 240,
	"currency": "USD"
}`

func newRouter(t *testing.T) (*chi.Mux, *bookingMocks.MockBooking, *availabilityMocks.MockAvailability) {
	ctrl := gomock.NewController(t)

	bookingSvc := bookingMocks.NewMockBooking(ctrl)
	availabilitySvc := availabilityMocks.NewMockAvailability(ctrl)

	h := handler.New(bookingSvc, availabilitySvc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		h.Router(r)
		r.Route("/admin", h.AdminRouter)
	})

	return router, bookingSvc, availabilitySvc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *bookingMocks.MockBooking)
		wantCode  int
		wantError string
	}{
		{
			name: "created",
			body: validBody,
			setupMock: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
						assert.Equal(t, "2024-07-10", req.StartDate)
						assert.Equal(t, "USD", req.Currency)

						return dto.BookingResponse{ID: "booking-1", StartDate: "2024-07-10", EndDate: "2024-07-12"}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing currency",
			body:      `{"roomId":"5b7f6a7e-2b1c-4d3e-9f10-1a2b3c4d5e6f","startDate":"2024-07-10","endDate":"2024-07-12","totalPrice":240}`,
			setupMock: func(*bookingMocks.MockBooking) {},
			wantCode:  http.StatusBadRequest,
			wantError: "currency is required",
		},
		{
			name: "overlapping stay",
			body: validBody,
			setupMock: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, service.ErrRoomUnavailable)
			},
			wantCode:  http.StatusConflict,
			wantError: service.ErrRoomUnavailable.Error(),
		},
		{
			name: "unknown room",
			body: validBody,
			setupMock: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, service.ErrRoomNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "store failure hides details",
			body: validBody,
			setupMock: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, errors.New("pq: connection reset"))
			},
			wantCode:  http.StatusInternalServerError,
			wantError: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc, _ := newRouter(t)
			tt.setupMock(svc)

			rec := serve(router, http.MethodPost, "/v1/bookings", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantError != "" {
				var body map[string]string
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Contains(t, body["error"], tt.wantError)
			}
		})
	}
}

func TestHandler_GetBookedDatesByType(t *testing.T) {
	router, _, availabilitySvc := newRouter(t)

	availabilitySvc.EXPECT().BookedDatesByType(gomock.Any(), "deluxe").Return([]string{"2024-06-03", "2024-06-04"}, nil)

	rec := serve(router, http.MethodGet, "/v1/bookings/booked-dates-by-type?typeKey=deluxe", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"bookedDates":["2024-06-03","2024-06-04"]}}`, rec.Body.String())
}

func TestHandler_GetFullyBookedDates(t *testing.T) {
	router, _, availabilitySvc := newRouter(t)

	availabilitySvc.EXPECT().FullyBookedDates(gomock.Any()).Return([]string{}, nil)

	rec := serve(router, http.MethodGet, "/v1/bookings/fully-booked-dates", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"fullyBookedDates":[]}}`, rec.Body.String())
}

func guestBooking() dto.BookingResponse {
	name, email, payment := "Jane Roe", "jane@example.com", "card"

	return dto.BookingResponse{
		ID:            "booking-1",
		RoomID:        "room-1",
		StartDate:     "2024-07-10",
		EndDate:       "2024-07-12",
		TotalPrice:    240,
		Currency:      "USD",
		GuestName:     &name,
		GuestEmail:    &email,
		PaymentMethod: &payment,
		Metadata:      gDto.Metadata{CreatedAt: "2024-07-01 10:00:00", CreatedBy: email},
	}
}

func TestHandler_GetBookings_OmitsGuestDetails(t *testing.T) {
	router, svc, _ := newRouter(t)

	svc.EXPECT().List(gomock.Any(), gDto.QueryParams{}).Return([]dto.BookingResponse{guestBooking()}, nil)

	rec := serve(router, http.MethodGet, "/v1/bookings", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "guestEmail")
	assert.NotContains(t, rec.Body.String(), "jane@example.com")
	assert.NotContains(t, rec.Body.String(), "guestName")
	assert.NotContains(t, rec.Body.String(), "paymentMethod")
	assert.JSONEq(t, `{"data":[{
		"id":"booking-1",
		"roomId":"room-1",
		"startDate":"2024-07-10",
		"endDate":"2024-07-12",
		"totalPrice":240,
		"currency":"USD",
		"createdAt":"2024-07-01 10:00:00"
	}]}`, rec.Body.String())
}

func TestHandler_GetAdminBookings_KeepsGuestDetails(t *testing.T) {
	router, svc, _ := newRouter(t)

	svc.EXPECT().List(gomock.Any(), gomock.Any()).Return([]dto.BookingResponse{guestBooking()}, nil)

	rec := serve(router, http.MethodGet, "/v1/admin/bookings", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"guestEmail":"jane@example.com"`)
}

func TestHandler_GetAdminBookings(t *testing.T) {
	router, svc, _ := newRouter(t)

	svc.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams) ([]dto.BookingResponse, error) {
			assert.Equal(t, "startDate", params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []dto.BookingResponse{{ID: "booking-1"}}, nil
		})

	rec := serve(router, http.MethodGet, "/v1/admin/bookings?sort_by=startDate&sort_dir=asc", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_DeleteBooking(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "deleted", wantCode: http.StatusOK},
		{name: "malformed id", err: service.ErrInvalidBookingID, wantCode: http.StatusBadRequest},
		{name: "missing", err: service.ErrBookingNotFound, wantCode: http.StatusNotFound},
		{name: "store failure", err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc, _ := newRouter(t)
			svc.EXPECT().Delete(gomock.Any(), "booking-1").Return(tt.err)

			rec := serve(router, http.MethodDelete, "/v1/admin/bookings/booking-1", "")

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
