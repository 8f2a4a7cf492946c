// Package engine computes room availability and fully booked calendar days from room inventory
// and booking intervals. Every function is pure: inputs are never modified and results depend on
// nothing else.
//
// A stay occupies its room on each day in [Start, End). The check-out day is free for a new
// arrival, both for range queries and for fully booked days.
package engine

import (
	"slices"
	"time"

	"hotel/shared/calendar"
)

type Room interface {
	RoomID() string
	RoomTypeKey() string
}

// Stay is the part of a booking the engine needs.
type Stay struct {
	RoomID string
	Start  time.Time
	End    time.Time
}

type TypeAvailability[R Room] struct {
	Total     int
	Available int
	Rooms     []R
}

// RangeAvailability counts, per room type, the rooms with no stay overlapping [start, end).
// Every key in typeKeys is present in the result, so a type without rooms reports zero totals.
func RangeAvailability[R Room](typeKeys []string, rooms []R, stays []Stay, start, end time.Time) map[string]TypeAvailability[R] {
	occupied := OccupiedRooms(stays, start, end)

	res := make(map[string]TypeAvailability[R], len(typeKeys))
	for _, key := range typeKeys {
		res[key] = TypeAvailability[R]{Rooms: []R{}}
	}

	for _, room := range rooms {
		key := room.RoomTypeKey()

		availability := res[key]
		if availability.Rooms == nil {
			availability.Rooms = []R{}
		}

		availability.Total++

		if _, booked := occupied[room.RoomID()]; !booked {
			availability.Available++
			availability.Rooms = append(availability.Rooms, room)
		}

		res[key] = availability
	}

	return res
}

// OccupiedRooms returns the ids of rooms with at least one stay overlapping [start, end).
func OccupiedRooms(stays []Stay, start, end time.Time) map[string]struct{} {
	occupied := make(map[string]struct{})

	for _, stay := range stays {
		if calendar.Overlaps(stay.Start, stay.End, start, end) {
			occupied[stay.RoomID] = struct{}{}
		}
	}

	return occupied
}

// FullyBookedDatesForType returns the sorted YYYY-MM-DD keys on which at least roomCount distinct
// rooms are occupied. stays must belong to rooms of a single type. A room booked twice on the same
// night counts once.
func FullyBookedDatesForType(stays []Stay, roomCount int) []string {
	dates := []string{}
	if roomCount <= 0 {
		return dates
	}

	for day, rooms := range occupancy(stays) {
		if len(rooms) >= roomCount {
			dates = append(dates, day)
		}
	}

	slices.Sort(dates)

	return dates
}

// FullyBookedDatesAllTypes returns the sorted days on which every room type present in rooms is
// fully booked. Stays on rooms missing from rooms are ignored. Without rooms no day is fully booked.
func FullyBookedDatesAllTypes[R Room](rooms []R, stays []Stay) []string {
	typeOf := make(map[string]string, len(rooms))
	roomCount := make(map[string]int)

	for _, room := range rooms {
		typeOf[room.RoomID()] = room.RoomTypeKey()
		roomCount[room.RoomTypeKey()]++
	}

	if len(roomCount) == 0 {
		return []string{}
	}

	staysByType := make(map[string][]Stay, len(roomCount))

	for _, stay := range stays {
		if key, ok := typeOf[stay.RoomID]; ok {
			staysByType[key] = append(staysByType[key], stay)
		}
	}

	var dates []string

	first := true

	for key, count := range roomCount {
		typeDates := FullyBookedDatesForType(staysByType[key], count)

		if first {
			dates, first = typeDates, false
		} else {
			dates = intersect(dates, typeDates)
		}

		if len(dates) == 0 {
			break
		}
	}

	return dates
}

// occupancy maps each occupied day to the set of rooms occupied on it.
func occupancy(stays []Stay) map[string]map[string]struct{} {
	days := make(map[string]map[string]struct{})

	for _, stay := range stays {
		for night := range calendar.Nights(stay.Start, stay.End) {
			key := calendar.Key(night)

			if days[key] == nil {
				days[key] = make(map[string]struct{})
			}

			days[key][stay.RoomID] = struct{}{}
		}
	}

	return days
}

// intersect keeps the elements of a that are also in b, in a's order.
func intersect(a, b []string) []string {
	keep := make(map[string]struct{}, len(b))
	for _, v := range b {
		keep[v] = struct{}{}
	}

	res := make([]string, 0, len(a))

	for _, v := range a {
		if _, ok := keep[v]; ok {
			res = append(res, v)
		}
	}

	return res
}
