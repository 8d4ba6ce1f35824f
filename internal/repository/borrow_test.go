package repository_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/ebook-service/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestLateFee(t *testing.T) {
	t.Parallel()

	const perDay = 8.0
	borrow := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	due := borrow.AddDate(0, 0, 7)

	tests := []struct {
		name string
		ret  time.Time
		want float64
	}{
		{
			// borrowed for 10 days against a 7-day due date
			name: "three days late",
			ret:  borrow.AddDate(0, 0, 10),
			want: 24,
		},
		{
			name: "on the due date",
			ret:  due,
			want: 0,
		},
		{
			name: "early return",
			ret:  borrow.AddDate(0, 0, 2),
			want: 0,
		},
		{
			name: "one day late",
			ret:  due.AddDate(0, 0, 1),
			want: 8,
		},
		{
			// time-of-day must not count as an extra day
			name: "late by hours only",
			ret:  due.Add(23 * time.Hour),
			want: 0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, repository.LateFee(due, tt.ret, perDay))
		})
	}
}
