package seats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"reelpass/internal/shared/config"
)

var (
	ErrInvalidSeatID  = errors.New("invalid seat id")
	ErrSeatOutOfRange = errors.New("seat out of hall range")
	ErrDuplicateSeat  = errors.New("duplicate seat in selection")
)

// Service projects hall geometry and ticket occupancy into seat maps
// and validates client-picked seat selections.
type Service interface {
	BuildSeatMap(occupied []string) *SeatMap
	ParseSeatID(raw string) (SeatID, error)
	ValidateSelection(seatIDs []string) ([]SeatID, error)
}

type service struct {
	rows        int
	seatsPerRow int
}

func NewService(hall config.HallConfig) Service {
	return &service{rows: hall.Rows, seatsPerRow: hall.SeatsPerRow}
}

func (s *service) BuildSeatMap(occupied []string) *SeatMap {
	taken := make(map[string]struct{}, len(occupied))
	for _, id := range occupied {
		taken[id] = struct{}{}
	}

	seatMap := &SeatMap{
		Rows:        s.rows,
		SeatsPerRow: s.seatsPerRow,
		Seats:       make([][]Seat, s.rows),
		Total:       s.rows * s.seatsPerRow,
	}

	for row := 1; row <= s.rows; row++ {
		rowSeats := make([]Seat, s.seatsPerRow)
		for seat := 1; seat <= s.seatsPerRow; seat++ {
			id := SeatID{Row: row, Seat: seat}.String()
			_, isTaken := taken[id]
			rowSeats[seat-1] = Seat{
				ID:       id,
				Row:      row,
				Seat:     seat,
				Occupied: isTaken,
			}
			if !isTaken {
				seatMap.Available++
			}
		}
		seatMap.Seats[row-1] = rowSeats
	}

	return seatMap
}

func (s *service) ParseSeatID(raw string) (SeatID, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return SeatID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, raw)
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return SeatID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, raw)
	}
	seat, err := strconv.Atoi(parts[1])
	if err != nil {
		return SeatID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, raw)
	}

	if row < 1 || row > s.rows || seat < 1 || seat > s.seatsPerRow {
		return SeatID{}, fmt.Errorf("%w: %q", ErrSeatOutOfRange, raw)
	}

	return SeatID{Row: row, Seat: seat}, nil
}

// ValidateSelection parses every seat id, rejecting out-of-range and
// duplicate picks. Occupancy is NOT checked here; the ticket insert
// is the only authority on taken seats.
func (s *service) ValidateSelection(seatIDs []string) ([]SeatID, error) {
	seen := make(map[string]struct{}, len(seatIDs))
	out := make([]SeatID, 0, len(seatIDs))

	for _, raw := range seatIDs {
		id, err := s.ParseSeatID(raw)
		if err != nil {
			return nil, err
		}
		canonical := id.String()
		if _, dup := seen[canonical]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSeat, raw)
		}
		seen[canonical] = struct{}{}
		out = append(out, id)
	}

	return out, nil
}
