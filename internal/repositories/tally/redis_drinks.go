package tally

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// LogDrink increments the all-time and daily counters, stores the photo and records
// the last action in a single MULTI/EXEC.
func (r *redisRepository) LogDrink(ctx context.Context, input *LogDrinkInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if input.Participant == "" || input.Today == "" {
		return errors.New("participant and today cannot be empty")
	}

	var photoJSON []byte
	if input.Photo != nil {
		if input.Photo.ID == "" {
			return errors.New("photo ID cannot be empty")
		}

		var err error
		photoJSON, err = json.Marshal(input.Photo)
		if err != nil {
			return fmt.Errorf("failed to marshal photo: %w", err)
		}
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, allTimeKey, input.Participant, 1)
		pipe.HIncrBy(ctx, dailyKey(input.Today), input.Participant, 1)
		pipe.SAdd(ctx, dailyDatesKey, input.Today)

		if input.Photo != nil {
			pipe.Set(ctx, photoKey(input.Photo.ID), photoJSON, 0)
			pipe.ZAdd(ctx, photosKey(input.Photo.Date), redis.Z{
				Score:  float64(input.Photo.Timestamp.UnixMicro()),
				Member: input.Photo.ID,
			})
			pipe.SAdd(ctx, photoDatesKey, input.Photo.Date)
		}

		pipe.HSet(ctx, lastActionKey,
			fieldParticipant, input.Participant,
			fieldCanUndo, 1,
			fieldDate, input.Today,
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to log drink: %w", err)
	}

	return nil
}

// Undo reverts the last action. Counters are floored at zero and only touched if
// they exist.
func (r *redisRepository) Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error) {
	if input == nil || input.Today == "" {
		return nil, errors.New("input and today cannot be empty")
	}

	var output *UndoOutput
	err := r.transact(ctx, func(tx *redis.Tx) error {
		output = nil

		raw, err := tx.HGetAll(ctx, lastActionKey).Result()
		if err != nil {
			return err
		}

		action := parseLastAction(raw)
		if action == nil || !action.CanUndo || action.Participant == "" {
			return ErrNothingToUndo
		}

		participant := action.Participant
		allTime, allTimeExists, err := hgetInt(ctx, tx, allTimeKey, participant)
		if err != nil {
			return err
		}

		fromToday := action.IsFromToday(input.Today)

		var (
			daily       int
			dailyExists bool
			photoID     string
		)
		if fromToday {
			daily, dailyExists, err = hgetInt(ctx, tx, dailyKey(input.Today), participant)
			if err != nil {
				return err
			}

			photoID, err = latestPhotoID(ctx, tx, input.Today, participant)
			if err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if allTimeExists {
				pipe.HSet(ctx, allTimeKey, participant, floorDecrement(allTime))
			}
			if dailyExists {
				pipe.HSet(ctx, dailyKey(input.Today), participant, floorDecrement(daily))
			}
			if photoID != "" {
				pipe.ZRem(ctx, photosKey(input.Today), photoID)
				pipe.Del(ctx, photoKey(photoID))
			}
			pipe.HSet(ctx, lastActionKey, fieldCanUndo, 0)
			return nil
		})
		if err != nil {
			return err
		}

		action.CanUndo = false
		output = &UndoOutput{
			LastAction: action,
			PhotoID:    photoID,
		}
		return nil
	}, lastActionKey, allTimeKey, dailyKey(input.Today), photosKey(input.Today))
	if err != nil {
		if errors.Is(err, ErrNothingToUndo) {
			return nil, ErrNothingToUndo
		}
		return nil, fmt.Errorf("failed to undo last action: %w", err)
	}

	return output, nil
}

// ResetAll zeroes the all-time counters of registered participants, clears today's
// counters and photos and clears the last action.
func (r *redisRepository) ResetAll(ctx context.Context, input *ResetAllInput) error {
	if input == nil || input.Today == "" {
		return errors.New("input and today cannot be empty")
	}

	err := r.transact(ctx, func(tx *redis.Tx) error {
		names, err := tx.ZRange(ctx, participantsKey, 0, -1).Result()
		if err != nil {
			return err
		}

		photoIDs, err := tx.ZRange(ctx, photosKey(input.Today), 0, -1).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(names) > 0 {
				values := make([]interface{}, 0, len(names)*2)
				for _, name := range names {
					values = append(values, name, 0)
				}
				pipe.HSet(ctx, allTimeKey, values...)
			}

			pipe.Del(ctx, dailyKey(input.Today))
			pipe.SRem(ctx, dailyDatesKey, input.Today)
			deletePhotos(ctx, pipe, input.Today, photoIDs)

			pipe.HSet(ctx, lastActionKey,
				fieldParticipant, "",
				fieldCanUndo, 0,
			)
			return nil
		})
		return err
	}, participantsKey, photosKey(input.Today))
	if err != nil {
		return fmt.Errorf("failed to reset all counts: %w", err)
	}

	return nil
}

// ResetDaily clears today's counters and photos
func (r *redisRepository) ResetDaily(ctx context.Context, input *ResetDailyInput) error {
	if input == nil || input.Today == "" {
		return errors.New("input and today cannot be empty")
	}

	err := r.transact(ctx, func(tx *redis.Tx) error {
		photoIDs, err := tx.ZRange(ctx, photosKey(input.Today), 0, -1).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, dailyKey(input.Today))
			pipe.SRem(ctx, dailyDatesKey, input.Today)
			deletePhotos(ctx, pipe, input.Today, photoIDs)
			return nil
		})
		return err
	}, photosKey(input.Today))
	if err != nil {
		return fmt.Errorf("failed to reset daily counts: %w", err)
	}

	return nil
}

// latestPhotoID finds the most recent photo of a participant on a day
func latestPhotoID(ctx context.Context, c redis.Cmdable, date, participant string) (string, error) {
	photos, err := loadPhotos(ctx, c, date)
	if err != nil {
		return "", err
	}

	for _, photo := range photos {
		if photo.Participant == participant {
			return photo.ID, nil
		}
	}

	return "", nil
}

func floorDecrement(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}
