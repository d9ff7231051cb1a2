package seats

import "fmt"

// SeatID is the canonical "row-seat" form, e.g. "3-12".
// Rows and seats are 1-based.
type SeatID struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

func (s SeatID) String() string {
	return fmt.Sprintf("%d-%d", s.Row, s.Seat)
}

// Seat is a single cell in the seat map projection.
type Seat struct {
	ID       string `json:"id"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	Occupied bool   `json:"occupied"`
}

// SeatMap is the per-screening occupancy grid sent to clients.
// It is always computed fresh from issued tickets, never cached.
type SeatMap struct {
	Rows        int      `json:"rows"`
	SeatsPerRow int      `json:"seats_per_row"`
	Seats       [][]Seat `json:"seats"`
	Available   int      `json:"available"`
	Total       int      `json:"total"`
}
