package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"ticket-verify/models"
	"ticket-verify/monitoring"
)

const cacheKey = "official_tickets:reference"

// CachingProvider keeps the reference set in Redis for a short TTL so bursts
// of uploads don't hammer the venue endpoint. Cache failures are treated as
// misses; the write-back is best effort.
type CachingProvider struct {
	next  OfficialTicketProvider
	redis *redis.Client
	ttl   time.Duration
}

func NewCachingProvider(next OfficialTicketProvider, redisClient *redis.Client, ttl time.Duration) *CachingProvider {
	return &CachingProvider{next: next, redis: redisClient, ttl: ttl}
}

func (p *CachingProvider) FetchOfficialTickets(ctx context.Context) ([]models.OfficialTicketRecord, error) {
	cached, err := p.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var tickets []models.OfficialTicketRecord
		unmarshalErr := json.Unmarshal([]byte(cached), &tickets)
		if unmarshalErr == nil {
			monitoring.RecordCacheResult(true)
			return tickets, nil
		}
		slog.Warn("corrupt reference cache entry, refetching", "error", unmarshalErr)
	}
	monitoring.RecordCacheResult(false)

	tickets, err := p.next.FetchOfficialTickets(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(tickets); err == nil {
		if err := p.redis.Set(ctx, cacheKey, data, p.ttl).Err(); err != nil {
			slog.Warn("failed to write reference cache", "error", err)
		}
	}

	return tickets, nil
}
