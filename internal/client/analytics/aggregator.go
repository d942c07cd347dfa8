package analytics

import (
	"context"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// UserLister fetches the full user collection.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Aggregator fetches the collection on its own, independently of the
// directory view, and recomputes the whole snapshot on every call.
type Aggregator struct {
	lister UserLister
	logger logging.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewAggregator(lister UserLister, logger logging.Logger, loc *time.Location) *Aggregator {
	return &Aggregator{
		lister: lister,
		logger: logger.With("module", "analytics"),
		loc:    loc,
		now:    time.Now,
	}
}

// Fetch lists the users and computes a Snapshot against a single "now"
// captured after the list returns. Errors are logged and returned; the
// caller keeps whatever it displayed before.
func (a *Aggregator) Fetch(ctx context.Context) (Snapshot, error) {
	users, err := a.lister.ListUsers(ctx)
	if err != nil {
		a.logger.Error(ctx, "error fetching users for analytics", "error", err)
		return Snapshot{}, err
	}

	s := Compute(users, a.now(), a.loc)
	a.logger.Debug(ctx, "analytics computed", "users", len(users), "months", len(s.Months.Labels))
	return s, nil
}
