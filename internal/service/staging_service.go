package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kdkce/examreg-backend/internal/config"
	"github.com/kdkce/examreg-backend/internal/model"
)

// ErrNoStagedForm signals that the student has no live staged selection.
// A selection dies by TTL expiry, by being cleared after a successful
// payment, or by never having existed.
var ErrNoStagedForm = errors.New("no staged exam form")

// StagingService keeps a student's in-progress exam-form selection and its
// bound gateway order in Redis. Nothing here touches Postgres; abandoned
// selections simply expire.
type StagingService struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStagingService creates a new StagingService.
func NewStagingService(rdb *redis.Client, ttl time.Duration) *StagingService {
	return &StagingService{rdb: rdb, ttl: ttl}
}

// Stage stores the selection, replacing any previous one. Re-staging also
// drops a previously bound order id, since it belongs to the old selection.
func (s *StagingService) Stage(ctx context.Context, studentID int, sel *model.StagedSelection) error {
	payload, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshal staged form: %w", err)
	}

	if err := s.rdb.Set(ctx, config.RedisKey.StagedFormKey(studentID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store staged form: %w", err)
	}
	return s.rdb.Del(ctx, config.RedisKey.BoundOrderKey(studentID)).Err()
}

// Staged retrieves the student's live selection, or ErrNoStagedForm.
func (s *StagingService) Staged(ctx context.Context, studentID int) (*model.StagedSelection, error) {
	raw, err := s.rdb.Get(ctx, config.RedisKey.StagedFormKey(studentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoStagedForm
		}
		return nil, fmt.Errorf("load staged form: %w", err)
	}

	sel := &model.StagedSelection{}
	if err := json.Unmarshal(raw, sel); err != nil {
		return nil, fmt.Errorf("unmarshal staged form: %w", err)
	}
	return sel, nil
}

// BindOrder attaches a gateway order id to the staged selection. The order
// key shares the selection's TTL so the pair expires together.
func (s *StagingService) BindOrder(ctx context.Context, studentID int, orderID string) error {
	if err := s.rdb.Set(ctx, config.RedisKey.BoundOrderKey(studentID), orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("bind order: %w", err)
	}
	return nil
}

// BoundOrder retrieves the gateway order id bound to the staged selection,
// or ErrNoStagedForm when none is live.
func (s *StagingService) BoundOrder(ctx context.Context, studentID int) (string, error) {
	orderID, err := s.rdb.Get(ctx, config.RedisKey.BoundOrderKey(studentID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoStagedForm
		}
		return "", fmt.Errorf("load bound order: %w", err)
	}
	return orderID, nil
}

// Extend refreshes the TTL on the staged selection and its bound order.
// A no-op when nothing is staged; expiring missing keys is harmless.
func (s *StagingService) Extend(ctx context.Context, studentID int) error {
	if err := s.rdb.Expire(ctx, config.RedisKey.StagedFormKey(studentID), s.ttl).Err(); err != nil {
		return fmt.Errorf("extend staged form: %w", err)
	}
	return s.rdb.Expire(ctx, config.RedisKey.BoundOrderKey(studentID), s.ttl).Err()
}

// Clear removes the selection and any bound order. Called after the paid
// form lands in Postgres.
func (s *StagingService) Clear(ctx context.Context, studentID int) error {
	return s.rdb.Del(ctx,
		config.RedisKey.StagedFormKey(studentID),
		config.RedisKey.BoundOrderKey(studentID),
	).Err()
}
