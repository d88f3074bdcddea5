package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	count int64
	err   error
}

func (s *stubCounter) CountSince(ctx context.Context, userID, productID, purchaseID string, windowStart *time.Time) (int64, error) {
	return s.count, s.err
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		name  string
		used  int64
		limit int
		want  int
	}{
		{"unused", 0, 3, 3},
		{"partially used", 2, 3, 1},
		{"exhausted", 3, 3, 0},
		{"floors at zero when over granted", 5, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLimiter(&stubCounter{count: tt.used})
			got, err := l.Remaining(context.Background(), "u1", "p1", "ord1", tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasCapacity(t *testing.T) {
	l := NewLimiter(&stubCounter{count: 2})

	ok, err := l.HasCapacity(context.Background(), "u1", "p1", "ord1", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.HasCapacity(context.Background(), "u1", "p1", "ord1", 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCounterErrorPropagates(t *testing.T) {
	wantErr := errors.New("ledger unavailable")
	l := NewLimiter(&stubCounter{err: wantErr})

	_, err := l.Remaining(context.Background(), "u1", "p1", "ord1", 3)
	assert.ErrorIs(t, err, wantErr)

	_, err = l.HasCapacity(context.Background(), "u1", "p1", "ord1", 3)
	assert.ErrorIs(t, err, wantErr)
}
