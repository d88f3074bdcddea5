package quota

import (
	"context"
	"time"
)

// Counter is the one query the limiter performs against the audit ledger.
type Counter interface {
	CountSince(ctx context.Context, userID, productID, purchaseID string, windowStart *time.Time) (int64, error)
}

// Limiter derives remaining download capacity from the audit log on every
// call. It holds no cache and no counter of its own, so it can never
// disagree with the ledger; callers re-run the check at both link issuance
// and actual download to narrow the race window between them.
type Limiter struct {
	counter Counter
}

func NewLimiter(counter Counter) *Limiter {
	return &Limiter{counter: counter}
}

// Used returns the number of downloads already counted against the quota.
func (l *Limiter) Used(ctx context.Context, userID, productID, purchaseID string) (int, error) {
	count, err := l.counter.CountSince(ctx, userID, productID, purchaseID, nil)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Remaining is max(0, limit - used).
func (l *Limiter) Remaining(ctx context.Context, userID, productID, purchaseID string, limit int) (int, error) {
	used, err := l.Used(ctx, userID, productID, purchaseID)
	if err != nil {
		return 0, err
	}
	if used >= limit {
		return 0, nil
	}
	return limit - used, nil
}

func (l *Limiter) HasCapacity(ctx context.Context, userID, productID, purchaseID string, limit int) (bool, error) {
	remaining, err := l.Remaining(ctx, userID, productID, purchaseID, limit)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}
