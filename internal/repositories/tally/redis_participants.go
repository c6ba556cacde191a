package tally

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// AddParticipant adds a participant to the registry sorted set
func (r *redisRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	participant := input.Participant
	if participant.Name == "" {
		return errors.New("participant name cannot be empty")
	}

	added, err := r.client.ZAddNX(ctx, participantsKey, redis.Z{
		Score:  float64(participant.CreatedAt.UnixMicro()),
		Member: participant.Name,
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	if added == 0 {
		return ErrParticipantExists
	}

	return nil
}

// RemoveParticipant removes a participant with its all-time counter and the daily
// counters of every day. Photos are kept.
func (r *redisRepository) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	var removedCmd *redis.IntCmd
	err := r.transact(ctx, func(tx *redis.Tx) error {
		dates, err := tx.SMembers(ctx, dailyDatesKey).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			removedCmd = pipe.ZRem(ctx, participantsKey, input.Name)
			pipe.HDel(ctx, allTimeKey, input.Name)
			for _, date := range dates {
				pipe.HDel(ctx, dailyKey(date), input.Name)
			}
			return nil
		})
		return err
	}, dailyDatesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to remove participant: %w", err)
	}

	return &RemoveParticipantOutput{
		Removed: removedCmd.Val() > 0,
	}, nil
}
