package tally

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/beertally/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Keys for Redis. Singletons use fixed keys.
	participantsKey = "tally:participants"
	allTimeKey      = "tally:all_time"
	dailyKeyPrefix  = "tally:daily:"
	dailyDatesKey   = "tally:daily_dates"
	photoKeyPrefix  = "tally:photo:"
	photosKeyPrefix = "tally:photos:"
	photoDatesKey   = "tally:photo_dates"
	lastActionKey   = "tally:last_action"
	dayMarkerKey    = "tally:day_marker"

	// Last action hash fields
	fieldParticipant = "participant"
	fieldCanUndo     = "can_undo"
	fieldDate        = "date"

	maxTxRetries = 10
)

// ErrTxContention is returned when an optimistic transaction keeps losing to concurrent writers
var ErrTxContention = errors.New("too much contention on tally keys")

// Config holds configuration for the Redis tally repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed tally repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func dailyKey(date string) string {
	return dailyKeyPrefix + date
}

func photoKey(id string) string {
	return photoKeyPrefix + id
}

func photosKey(date string) string {
	return photosKeyPrefix + date
}

// transact runs fn as an optimistic transaction over keys, retrying when a
// watched key changes before EXEC.
func (r *redisRepository) transact(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrTxContention
}

// Ping checks the Redis connection
func (r *redisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// EnsureParticipants writes the default participants if the registry is empty
func (r *redisRepository) EnsureParticipants(ctx context.Context, input *EnsureParticipantsInput) (*EnsureParticipantsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.Names) == 0 {
		return &EnsureParticipantsOutput{}, nil
	}

	var created bool
	err := r.transact(ctx, func(tx *redis.Tx) error {
		created = false

		count, err := tx.ZCard(ctx, participantsKey).Result()
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		// Scores keep the defaults in the order given
		members := make([]redis.Z, 0, len(input.Names))
		base := input.CreatedAt.UnixMicro()
		for i, name := range input.Names {
			members = append(members, redis.Z{
				Score:  float64(base + int64(i)),
				Member: name,
			})
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZAdd(ctx, participantsKey, members...)
			return nil
		})
		if err != nil {
			return err
		}

		created = true
		return nil
	}, participantsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure participants: %w", err)
	}

	return &EnsureParticipantsOutput{Created: created}, nil
}

// Rollover purges daily counters and photos that are not from today
func (r *redisRepository) Rollover(ctx context.Context, input *RolloverInput) (*RolloverOutput, error) {
	if input == nil || input.Today == "" {
		return nil, errors.New("input and today cannot be empty")
	}

	output := &RolloverOutput{}
	err := r.transact(ctx, func(tx *redis.Tx) error {
		*output = RolloverOutput{}

		marker, err := tx.Get(ctx, dayMarkerKey).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if marker == input.Today {
			return nil
		}
		output.PreviousDate = marker

		dailyDates, err := tx.SMembers(ctx, dailyDatesKey).Result()
		if err != nil {
			return err
		}

		photoDates, err := tx.SMembers(ctx, photoDatesKey).Result()
		if err != nil {
			return err
		}

		var staleDaily []string
		for _, date := range dailyDates {
			if date != input.Today {
				staleDaily = append(staleDaily, date)
			}
		}

		stalePhotos := make(map[string][]string)
		for _, date := range photoDates {
			if date == input.Today {
				continue
			}
			ids, err := tx.ZRange(ctx, photosKey(date), 0, -1).Result()
			if err != nil {
				return err
			}
			stalePhotos[date] = ids
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, date := range staleDaily {
				pipe.Del(ctx, dailyKey(date))
				pipe.SRem(ctx, dailyDatesKey, date)
			}
			for date, ids := range stalePhotos {
				deletePhotos(ctx, pipe, date, ids)
			}
			pipe.HSet(ctx, lastActionKey, fieldCanUndo, 0)
			pipe.Set(ctx, dayMarkerKey, input.Today, 0)
			return nil
		})
		if err != nil {
			return err
		}

		output.RolledOver = true
		return nil
	}, dayMarkerKey, dailyDatesKey, photoDatesKey, lastActionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to roll over to %s: %w", input.Today, err)
	}

	return output, nil
}

// GetState reads participants, counters and the last action in one round trip
func (r *redisRepository) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil || input.Today == "" {
		return nil, errors.New("input and today cannot be empty")
	}

	var (
		participantsCmd *redis.ZSliceCmd
		allTimeCmd      *redis.MapStringStringCmd
		dailyCmd        *redis.MapStringStringCmd
		lastActionCmd   *redis.MapStringStringCmd
	)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		participantsCmd = pipe.ZRangeWithScores(ctx, participantsKey, 0, -1)
		allTimeCmd = pipe.HGetAll(ctx, allTimeKey)
		dailyCmd = pipe.HGetAll(ctx, dailyKey(input.Today))
		lastActionCmd = pipe.HGetAll(ctx, lastActionKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tally state: %w", err)
	}

	participants := make([]*models.Participant, 0, len(participantsCmd.Val()))
	for _, z := range participantsCmd.Val() {
		name, ok := z.Member.(string)
		if !ok {
			continue
		}
		participants = append(participants, &models.Participant{
			Name:      name,
			CreatedAt: time.UnixMicro(int64(z.Score)).UTC(),
		})
	}

	allTime, err := parseCounts(allTimeCmd.Val())
	if err != nil {
		return nil, fmt.Errorf("failed to parse all-time counts: %w", err)
	}

	daily, err := parseCounts(dailyCmd.Val())
	if err != nil {
		return nil, fmt.Errorf("failed to parse daily counts: %w", err)
	}

	return &GetStateOutput{
		Participants:  participants,
		AllTimeCounts: allTime,
		DailyCounts:   daily,
		LastAction:    parseLastAction(lastActionCmd.Val()),
	}, nil
}

// ListPhotos returns the photos for a day, most recent first
func (r *redisRepository) ListPhotos(ctx context.Context, input *ListPhotosInput) (*ListPhotosOutput, error) {
	if input == nil || input.Date == "" {
		return nil, errors.New("input and date cannot be empty")
	}

	photos, err := loadPhotos(ctx, r.client, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for %s: %w", input.Date, err)
	}

	return &ListPhotosOutput{Photos: photos}, nil
}

// loadPhotos reads a day's photos newest first. Photos deleted between reading the
// index and the records are skipped.
func loadPhotos(ctx context.Context, c redis.Cmdable, date string) ([]*models.DrinkPhoto, error) {
	ids, err := c.ZRevRange(ctx, photosKey(date), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	photos := make([]*models.DrinkPhoto, 0, len(ids))
	if len(ids) == 0 {
		return photos, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, photoKey(id))
	}

	values, err := c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var photo models.DrinkPhoto
		if err := json.Unmarshal([]byte(raw), &photo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal photo %s: %w", ids[i], err)
		}
		photos = append(photos, &photo)
	}

	return photos, nil
}

// deletePhotos queues deletion of a day's photo records and its index
func deletePhotos(ctx context.Context, pipe redis.Pipeliner, date string, ids []string) {
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, photoKey(id))
	}
	keys = append(keys, photosKey(date))

	pipe.Del(ctx, keys...)
	pipe.SRem(ctx, photoDatesKey, date)
}

func parseCounts(raw map[string]string) (map[string]int, error) {
	counts := make(map[string]int, len(raw))
	for name, value := range raw {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid count %q for %s: %w", value, name, err)
		}
		counts[name] = n
	}
	return counts, nil
}

func parseLastAction(raw map[string]string) *models.LastAction {
	if len(raw) == 0 {
		return nil
	}

	return &models.LastAction{
		Participant: raw[fieldParticipant],
		CanUndo:     raw[fieldCanUndo] == "1",
		Date:        raw[fieldDate],
	}
}

// hgetInt reads an integer hash field, reporting whether it exists
func hgetInt(ctx context.Context, c redis.Cmdable, key, field string) (int, bool, error) {
	n, err := c.HGet(ctx, key, field).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
