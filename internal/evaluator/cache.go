package evaluator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/telemetry-platform/alarm-evaluator/internal/domain/entity"
	"github.com/telemetry-platform/alarm-evaluator/internal/domain/repo"
)

// AlarmCache holds the enabled event alarms of each project for up to TTL.
// It owns all mutation of its entries: eviction on read and the in-place
// state update when an alarm fires are both serialized behind one lock,
// since both are check-then-act on the same entry.
//
// A TTL of 0 disables caching: every Get goes to the store.
type AlarmCache struct {
	store repo.AlarmGetter
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	alarms    map[string]*entity.Alarm
	updatedAt time.Time
}

func NewAlarmCache(store repo.AlarmGetter, ttl time.Duration, clock clockwork.Clock) *AlarmCache {
	return &AlarmCache{
		store:   store,
		ttl:     ttl,
		clock:   clock,
		entries: map[string]*cacheEntry{},
	}
}

// Get returns the enabled event alarms of the project, keyed by alarm ID.
// A fresh cache entry is served without a store round trip; an entry older
// than the TTL is discarded and rebuilt. Store errors propagate to the
// caller, which isolates them per event.
func (c *AlarmCache) Get(ctx context.Context, project string) (map[string]*entity.Alarm, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl > 0 {
		entry, present := c.entries[project]
		if present {
			if c.clock.Since(entry.updatedAt) >= c.ttl {
				delete(c.entries, project)
			} else {
				return entry.alarms, nil
			}
		}
	}

	enabled := true

	alarms, err := c.store.GetAlarms(ctx, repo.AlarmFilter{
		Enabled:   &enabled,
		Type:      entity.AlarmTypeEvent,
		ProjectID: project,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alarms for project %q: %w", project, err)
	}

	byID := make(map[string]*entity.Alarm, len(alarms))

	for i := range alarms {
		alarm := alarms[i]
		byID[alarm.ID] = &alarm
	}

	if c.ttl > 0 {
		c.entries[project] = &cacheEntry{
			alarms:    byID,
			updatedAt: c.clock.Now(),
		}
	}

	return byID, nil
}

// MarkFired updates the cached copy of an alarm after a successful refresh,
// so lookups within the same TTL window see the new state. The entry's
// freshness is deliberately left untouched: firing does not extend the TTL.
func (c *AlarmCache) MarkFired(project, alarmID string, state entity.AlarmState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, present := c.entries[project]
	if !present {
		return
	}

	alarm, present := entry.alarms[alarmID]
	if !present {
		return
	}

	alarm.State = state
}
