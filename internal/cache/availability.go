package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/navalha-labs/booking-engine/internal/domain/booking"
)

// AvailabilityCache keeps generated slot lists in Redis for a short TTL.
// Stale entries are acceptable: slot display is advisory and the commit path
// re-checks conflicts under its own transaction.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	in booking.AvailabilityInput,
) ([]booking.TimeSlot, bool) {

	data, err := c.rdb.Get(ctx, key(in)).Bytes()
	if err != nil {
		// cache miss or redis down, either way fall through to the source
		return nil, false
	}

	var slots []booking.TimeSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	in booking.AvailabilityInput,
	slots []booking.TimeSlot,
) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(in), data, c.ttl)
}

func key(in booking.AvailabilityInput) string {
	ids := make([]string, 0, len(in.ServiceIDs))
	for _, id := range in.ServiceIDs {
		ids = append(ids, fmt.Sprint(id))
	}
	sort.Strings(ids)

	return fmt.Sprintf(
		"availability:%d:%s:%s",
		in.ProviderID,
		in.Date.Format("2006-01-02"),
		strings.Join(ids, ","),
	)
}
