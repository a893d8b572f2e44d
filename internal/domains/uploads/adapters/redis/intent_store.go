package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

// KeyIntents is a sorted set: member = blob url, score = upload time in unix millis.
const KeyIntents = "uploads:intents"

var _ ports.IntentStore = (*IntentStore)(nil)

// IntentStore keeps upload intents in a Redis sorted set so expiry scans are range queries.
type IntentStore struct {
	rdb goredis.UniversalClient
	key string
}

func NewIntentStore(rdb goredis.UniversalClient) *IntentStore {
	return &IntentStore{rdb: rdb, key: KeyIntents}
}

func (s *IntentStore) Record(ctx context.Context, intent domain.Intent) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	err := s.rdb.ZAdd(ctx, s.key, goredis.Z{
		Score:  float64(intent.CreatedAt.UnixMilli()),
		Member: intent.URL,
	}).Err()
	if err != nil {
		return apperrors.Network(fmt.Errorf("record upload intent: %w", err))
	}
	return nil
}

func (s *IntentStore) Commit(ctx context.Context, urls ...string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	members := make([]any, 0, len(urls))
	for _, url := range urls {
		members = append(members, url)
	}
	if err := s.rdb.ZRem(ctx, s.key, members...).Err(); err != nil {
		return apperrors.Network(fmt.Errorf("commit upload intents: %w", err))
	}
	return nil
}

func (s *IntentStore) Expired(ctx context.Context, before time.Time, limit int) ([]domain.Intent, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	opt := &goredis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(before.UnixMilli(), 10),
	}
	if limit > 0 {
		opt.Count = int64(limit)
	}
	entries, err := s.rdb.ZRangeByScoreWithScores(ctx, s.key, opt).Result()
	if err != nil {
		return nil, apperrors.Network(fmt.Errorf("scan upload intents: %w", err))
	}
	out := make([]domain.Intent, 0, len(entries))
	for _, entry := range entries {
		url, ok := entry.Member.(string)
		if !ok {
			continue
		}
		out = append(out, domain.Intent{URL: url, CreatedAt: time.UnixMilli(int64(entry.Score)).UTC()})
	}
	return out, nil
}

func (s *IntentStore) ensureClient() error {
	if s == nil || s.rdb == nil {
		return errors.New("redis intent store not configured")
	}
	return nil
}
