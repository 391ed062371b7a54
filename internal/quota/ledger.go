// Package quota gates free-tier usage of the generation endpoint with a
// per-subject, per-UTC-day counter.
package quota

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"server/internal/domain"
	"server/internal/kv"
)

const quotaPrefix = "quota:"

// Status is the outcome of a consume attempt. Remaining is nil when the role
// bypasses the ledger, otherwise the uses left today (floored at zero).
type Status struct {
	Allowed   bool
	Remaining *int
}

// Ledger counts accepted free-tier requests per subject and day.
//
// Admission is race-free: a request is admitted only when the store's atomic
// post-increment value is within the limit, so two racing requests cannot
// both take the last slot. Denied requests never write. The stored counter
// can exceed the limit by the width of a lost race; that only gates harder.
type Ledger struct {
	kv    kv.Store
	limit int
}

// NewLedger builds a ledger admitting freeLimit requests per subject per day.
func NewLedger(store kv.Store, freeLimit int) *Ledger {
	return &Ledger{kv: store, limit: freeLimit}
}

// Consume records one use for the subject on asOf's UTC day. Pro and admin
// roles bypass the ledger with no store traffic at all.
func (l *Ledger) Consume(ctx context.Context, subject string, role domain.Role, asOf time.Time) (Status, error) {
	if role.BypassesQuota() {
		return Status{Allowed: true}, nil
	}

	key := quotaPrefix + subject + ":" + asOf.UTC().Format("2006-01-02")

	raw, found, err := l.kv.Get(ctx, key)
	if err != nil {
		return Status{}, fmt.Errorf("read quota: %w", err)
	}
	current := 0
	if found {
		current, _ = strconv.Atoi(raw)
	}
	if current >= l.limit {
		return Status{Allowed: false, Remaining: intPtr(0)}, nil
	}

	count, err := l.kv.Incr(ctx, key)
	if err != nil {
		return Status{}, fmt.Errorf("increment quota: %w", err)
	}
	if count > int64(l.limit) {
		// lost the race for the last slot
		return Status{Allowed: false, Remaining: intPtr(0)}, nil
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Status{Allowed: true, Remaining: &remaining}, nil
}

func intPtr(n int) *int { return &n }
