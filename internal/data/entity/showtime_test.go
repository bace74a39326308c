package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestShowtimeOverlaps(t *testing.T) {
	s := &Showtime{StartTime: at(10, 0), EndTime: at(12, 0)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", at(10, 30), at(11, 30), true},
		{"covering", at(9, 0), at(13, 0), true},
		{"straddles start", at(9, 0), at(10, 30), true},
		{"straddles end", at(11, 0), at(13, 0), true},
		{"identical", at(10, 0), at(12, 0), true},
		{"touches end", at(12, 0), at(14, 0), true},
		{"touches start", at(8, 0), at(10, 0), true},
		{"after", at(12, 1), at(14, 0), false},
		{"before", at(8, 0), at(9, 59), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Overlaps(tc.start, tc.end))
		})
	}
}
