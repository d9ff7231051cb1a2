package seats

import (
	"errors"
	"testing"

	"reelpass/internal/shared/config"
)

func newTestService() Service {
	return NewService(config.HallConfig{Rows: 10, SeatsPerRow: 18})
}

func TestParseSeatID(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name    string
		input   string
		want    SeatID
		wantErr error
	}{
		{name: "valid corner", input: "1-1", want: SeatID{Row: 1, Seat: 1}},
		{name: "valid last seat", input: "10-18", want: SeatID{Row: 10, Seat: 18}},
		{name: "row out of range", input: "11-1", wantErr: ErrSeatOutOfRange},
		{name: "seat out of range", input: "1-19", wantErr: ErrSeatOutOfRange},
		{name: "zero row", input: "0-5", wantErr: ErrSeatOutOfRange},
		{name: "negative seat", input: "3--2", wantErr: ErrInvalidSeatID},
		{name: "missing separator", input: "312", wantErr: ErrInvalidSeatID},
		{name: "garbage", input: "a-b", wantErr: ErrInvalidSeatID},
		{name: "empty", input: "", wantErr: ErrInvalidSeatID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ParseSeatID(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseSeatID(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeatID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeatID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateSelection(t *testing.T) {
	svc := newTestService()

	t.Run("accepts distinct valid seats", func(t *testing.T) {
		ids, err := svc.ValidateSelection([]string{"1-1", "1-2", "5-9"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ids) != 3 {
			t.Fatalf("got %d seats, want 3", len(ids))
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := svc.ValidateSelection([]string{"2-3", "2-3"})
		if !errors.Is(err, ErrDuplicateSeat) {
			t.Fatalf("error = %v, want ErrDuplicateSeat", err)
		}
	})

	t.Run("rejects any invalid seat in the batch", func(t *testing.T) {
		_, err := svc.ValidateSelection([]string{"1-1", "99-1"})
		if !errors.Is(err, ErrSeatOutOfRange) {
			t.Fatalf("error = %v, want ErrSeatOutOfRange", err)
		}
	})

	t.Run("empty selection is valid and empty", func(t *testing.T) {
		ids, err := svc.ValidateSelection(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ids) != 0 {
			t.Fatalf("got %d seats, want 0", len(ids))
		}
	})
}

func TestBuildSeatMap(t *testing.T) {
	svc := newTestService()

	t.Run("empty hall", func(t *testing.T) {
		m := svc.BuildSeatMap(nil)
		if m.Total != 180 || m.Available != 180 {
			t.Fatalf("got total=%d available=%d, want 180/180", m.Total, m.Available)
		}
		if len(m.Seats) != 10 || len(m.Seats[0]) != 18 {
			t.Fatalf("grid dimensions wrong: %dx%d", len(m.Seats), len(m.Seats[0]))
		}
	})

	t.Run("occupied seats flagged", func(t *testing.T) {
		m := svc.BuildSeatMap([]string{"1-1", "3-12"})
		if m.Available != 178 {
			t.Fatalf("available = %d, want 178", m.Available)
		}
		if !m.Seats[0][0].Occupied {
			t.Error("seat 1-1 should be occupied")
		}
		if !m.Seats[2][11].Occupied {
			t.Error("seat 3-12 should be occupied")
		}
		if m.Seats[0][1].Occupied {
			t.Error("seat 1-2 should be free")
		}
	})

	t.Run("unknown occupied ids are ignored", func(t *testing.T) {
		m := svc.BuildSeatMap([]string{"99-99"})
		if m.Available != 180 {
			t.Fatalf("available = %d, want 180", m.Available)
		}
	})
}
