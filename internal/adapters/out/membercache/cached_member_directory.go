// Package membercache decorates a member directory with a Redis read
// cache. Only active members are cached; misses always reach the
// underlying directory so a newly seeded member is found at once.
package membercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
	"callcenter/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a deactivated member can still be served.
const DefaultTTL = 5 * time.Minute

type cachedMember struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// CachedMemberDirectory implements ports.MemberDirectory. Redis failures
// are logged and the lookup falls through to the wrapped directory.
type CachedMemberDirectory struct {
	next    ports.MemberDirectory
	client  redis.Cmdable
	ttl     time.Duration
	service string
	logger  *slog.Logger
}

// NewCachedMemberDirectory wraps next with a cache stored in client.
// A non-positive ttl selects DefaultTTL.
func NewCachedMemberDirectory(
	next ports.MemberDirectory,
	client redis.Cmdable,
	ttl time.Duration,
	service string,
	logger *slog.Logger,
) *CachedMemberDirectory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedMemberDirectory{
		next:    next,
		client:  client,
		ttl:     ttl,
		service: service,
		logger:  logger.With("component", "member_cache"),
	}
}

// NewClient creates a Redis client for addr.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// FindActive serves the member from Redis when cached, otherwise asks the
// wrapped directory and caches a hit.
func (d *CachedMemberDirectory) FindActive(ctx context.Context, number kernel.DigitCode) (*member.Member, error) {
	key := d.key(number)

	if m, ok := d.get(ctx, key); ok {
		return m, nil
	}

	m, err := d.next.FindActive(ctx, number)
	if err != nil {
		return nil, err
	}

	d.set(ctx, key, m)
	return m, nil
}

// Invalidate drops the cached entries of the given members.
func (d *CachedMemberDirectory) Invalidate(ctx context.Context, numbers ...kernel.DigitCode) error {
	if len(numbers) == 0 {
		return nil
	}

	keys := make([]string, 0, len(numbers))
	for _, n := range numbers {
		keys = append(keys, d.key(n))
	}
	return d.client.Del(ctx, keys...).Err()
}

func (d *CachedMemberDirectory) get(ctx context.Context, key string) (*member.Member, bool) {
	raw, err := d.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		d.logger.WarnContext(ctx, "member cache read failed", "key", key, "error", err)
		return nil, false
	}

	var cached cachedMember
	if err = json.Unmarshal(raw, &cached); err != nil {
		d.logger.WarnContext(ctx, "member cache entry is corrupt", "key", key, "error", err)
		return nil, false
	}

	number, err := kernel.NewDigitCode("member number", cached.Number)
	if err != nil {
		d.logger.WarnContext(ctx, "member cache entry is corrupt", "key", key, "error", err)
		return nil, false
	}

	m, err := member.RestoreMember(number, cached.Name, true)
	if err != nil {
		d.logger.WarnContext(ctx, "member cache entry is corrupt", "key", key, "error", err)
		return nil, false
	}

	return m, true
}

func (d *CachedMemberDirectory) set(ctx context.Context, key string, m *member.Member) {
	if !m.IsActive() {
		return
	}

	payload, err := json.Marshal(cachedMember{Number: m.Number().String(), Name: m.Name()})
	if err != nil {
		return
	}

	if err = d.client.Set(ctx, key, payload, d.ttl).Err(); err != nil {
		d.logger.WarnContext(ctx, "member cache write failed", "key", key, "error", err)
	}
}

func (d *CachedMemberDirectory) key(number kernel.DigitCode) string {
	return fmt.Sprintf("%s:member:%s", d.service, number.String())
}
