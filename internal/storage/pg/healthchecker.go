package pg

import (
	"context"
)

type HealthChecker struct {
	store *Store
}

func NewHealthChecker(store *Store) *HealthChecker {
	return &HealthChecker{
		store: store,
	}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.store == nil || hc.store.db == nil {
		return false
	}

	return hc.store.db.Ping(ctx) == nil
}
