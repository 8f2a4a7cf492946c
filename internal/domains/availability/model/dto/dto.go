package dto

import (
	"slices"

	"hotel/internal/domains/availability/engine"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
)

type AvailabilityRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate"   validate:"required"`
}

type TypeAvailabilityResponse struct {
	Total     int                    `json:"total"`
	Available int                    `json:"available"`
	Rooms     []roomDto.RoomResponse `json:"rooms"`
}

type RangeAvailabilityResponse struct {
	Availability      map[string]TypeAvailabilityResponse `json:"availability"`
	AllAvailableRooms []roomDto.RoomResponse              `json:"allAvailableRooms"`
	BookedRoomIDs     []string                            `json:"bookedRoomIds"`
}

// FromEngine builds the response. rooms keeps its order in allAvailableRooms.
func (r *RangeAvailabilityResponse) FromEngine(
	availability map[string]engine.TypeAvailability[roomModel.RoomDetail],
	rooms []roomModel.RoomDetail,
	occupied map[string]struct{},
) {
	r.Availability = make(map[string]TypeAvailabilityResponse, len(availability))
	for key, a := range availability {
		r.Availability[key] = TypeAvailabilityResponse{
			Total:     a.Total,
			Available: a.Available,
			Rooms:     roomDto.FromDetails(a.Rooms),
		}
	}

	r.AllAvailableRooms = []roomDto.RoomResponse{}

	for _, room := range rooms {
		if _, booked := occupied[room.ID]; booked {
			continue
		}

		var res roomDto.RoomResponse

		res.FromDetail(room)
		r.AllAvailableRooms = append(r.AllAvailableRooms, res)
	}

	r.BookedRoomIDs = make([]string, 0, len(occupied))
	for id := range occupied {
		r.BookedRoomIDs = append(r.BookedRoomIDs, id)
	}

	slices.Sort(r.BookedRoomIDs)
}
