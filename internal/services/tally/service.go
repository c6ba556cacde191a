package tally

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/KirkDiggler/beertally/internal/common/clock"
	"github.com/KirkDiggler/beertally/internal/common/uuid"
	"github.com/KirkDiggler/beertally/internal/models"
	tallyRepo "github.com/KirkDiggler/beertally/internal/repositories/tally"
	"github.com/KirkDiggler/beertally/pkg/logger"
)

// MaxNameLength keeps names within Discord's button label and custom ID limits
const MaxNameLength = 20

// service implements the Service interface
type service struct {
	repo          tallyRepo.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *zap.Logger
	location      *time.Location
	defaults      []string
}

// New creates a new tally service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Repository == nil {
		return nil, ErrNilRepository
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.Logger == nil {
		return nil, ErrNilLogger
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	defaults := make([]string, 0, len(cfg.DefaultParticipants))
	seen := make(map[string]bool, len(cfg.DefaultParticipants))
	for _, name := range cfg.DefaultParticipants {
		name = NormalizeName(name)
		if !validName(name) || seen[name] {
			continue
		}
		seen[name] = true
		defaults = append(defaults, name)
	}

	return &service{
		repo:          cfg.Repository,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
		location:      location,
		defaults:      defaults,
	}, nil
}

// GetSnapshot returns the current tally
func (s *service) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*GetSnapshotOutput, error) {
	now, today, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(ctx, now, today)
	if err != nil {
		return nil, err
	}

	return &GetSnapshotOutput{Snapshot: snapshot}, nil
}

// LogDrink counts one drink for a participant. Unregistered names are counted too.
func (s *service) LogDrink(ctx context.Context, input *LogDrinkInput) (*LogDrinkOutput, error) {
	if input == nil {
		return nil, ErrInvalidParticipant
	}

	name := NormalizeName(input.Participant)
	if !validName(name) {
		return nil, ErrInvalidParticipant
	}

	now, today, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.repo.GetState(ctx, &tallyRepo.GetStateInput{Today: today})
	if err != nil {
		return nil, storageError("log drink for "+name, err)
	}
	if !isRegistered(state.Participants, name) {
		s.logger.Warn("Logging drink for unregistered participant",
			zap.String(logger.FieldParticipant, name))
	}

	var photo *models.DrinkPhoto
	if input.Photo != "" {
		photo = &models.DrinkPhoto{
			ID:          s.uuidGenerator.NewUUID(),
			Participant: name,
			ImageData:   input.Photo,
			Date:        today,
			Timestamp:   now.UTC(),
		}
	}

	err = s.repo.LogDrink(ctx, &tallyRepo.LogDrinkInput{
		Participant: name,
		Today:       today,
		Photo:       photo,
	})
	if err != nil {
		return nil, storageError("log drink for "+name, err)
	}

	output := &LogDrinkOutput{}
	fields := []zap.Field{
		zap.String(logger.FieldParticipant, name),
		zap.String(logger.FieldDate, today),
	}
	if photo != nil {
		output.PhotoID = photo.ID
		fields = append(fields, zap.String(logger.FieldPhotoID, photo.ID))
	}
	s.logger.Info("Drink logged", fields...)

	output.Snapshot, err = s.snapshot(ctx, now, today)
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Undo reverts the most recent drink. It fails with ErrNoUndoAvailable when there is
// nothing to revert or the last drink was already undone or reset.
func (s *service) Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error) {
	now, today, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.Undo(ctx, &tallyRepo.UndoInput{Today: today})
	if err != nil {
		if errors.Is(err, tallyRepo.ErrNothingToUndo) {
			return nil, ErrNoUndoAvailable
		}
		return nil, storageError("undo last drink", err)
	}

	participant := result.LastAction.Participant
	s.logger.Info("Drink undone",
		zap.String(logger.FieldParticipant, participant),
		zap.String(logger.FieldPhotoID, result.PhotoID))

	snapshot, err := s.snapshot(ctx, now, today)
	if err != nil {
		return nil, err
	}

	return &UndoOutput{
		Snapshot:    snapshot,
		Participant: participant,
	}, nil
}

// AddParticipant registers a new participant with zero counts
func (s *service) AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error) {
	if input == nil {
		return nil, ErrInvalidParticipant
	}

	name := NormalizeName(input.Name)
	if !validName(name) {
		return nil, ErrInvalidParticipant
	}

	now, today, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	err = s.repo.AddParticipant(ctx, &tallyRepo.AddParticipantInput{
		Participant: &models.Participant{
			Name:      name,
			CreatedAt: now.UTC(),
		},
	})
	if err != nil {
		if errors.Is(err, tallyRepo.ErrParticipantExists) {
			return nil, fmt.Errorf("failed to add participant %s: %w", name, ErrDuplicateParticipant)
		}
		return nil, storageError("add participant "+name, err)
	}

	s.logger.Info("Participant added", zap.String(logger.FieldParticipant, name))

	snapshot, err := s.snapshot(ctx, now, today)
	if err != nil {
		return nil, err
	}

	return &AddParticipantOutput{
		Snapshot:    snapshot,
		Participant: name,
	}, nil
}

// RemoveParticipant deletes a participant and all of their counts. Their photos are
// kept. Removing an unknown participant is a no-op.
func (s *service) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error) {
	if input == nil {
		return nil, ErrInvalidParticipant
	}

	name := NormalizeName(input.Name)
	if !validName(name) {
		return nil, ErrInvalidParticipant
	}

	now, today, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.RemoveParticipant(ctx, &tallyRepo.RemoveParticipantInput{Name: name})
	if err != nil {
		return nil, storageError("remove participant "+name, err)
	}

	if result.Removed {
		s.logger.Info("Participant removed", zap.String(logger.FieldParticipant, name))
	} else {
		s.logger.Debug("Participant to remove was not registered", zap.String(logger.FieldParticipant, name))
	}

	snapshot, err := s.snapshot(ctx, now, today)
	if err != nil {
		return nil, err
	}

	return &RemoveParticipantOutput{
		Snapshot:    snapshot,
		Participant: name,
	}, nil
}

// ResetAll zeroes all-time counts, clears today's counts and photos and cancels any
// pending undo
func (s *service) ResetAll(ctx context.Context, input *ResetAllInput) (*ResetAllOutput, error) {
	now, today, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ResetAll(ctx, &tallyRepo.ResetAllInput{Today: today}); err != nil {
		return nil, storageError("reset all counts", err)
	}

	s.logger.Info("All counts reset", zap.String(logger.FieldDate, today))

	snapshot, err := s.snapshot(ctx, now, today)
	if err != nil {
		return nil, err
	}

	return &ResetAllOutput{Snapshot: snapshot}, nil
}

// ResetDaily clears today's counts and photos
func (s *service) ResetDaily(ctx context.Context, input *ResetDailyInput) (*ResetDailyOutput, error) {
	now, today, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ResetDaily(ctx, &tallyRepo.ResetDailyInput{Today: today}); err != nil {
		return nil, storageError("reset daily counts", err)
	}

	s.logger.Info("Daily counts reset", zap.String(logger.FieldDate, today))

	snapshot, err := s.snapshot(ctx, now, today)
	if err != nil {
		return nil, err
	}

	return &ResetDailyOutput{Snapshot: snapshot}, nil
}

// ListPhotos returns today's photos, most recent first
func (s *service) ListPhotos(ctx context.Context, input *ListPhotosInput) (*ListPhotosOutput, error) {
	_, today, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.ListPhotos(ctx, &tallyRepo.ListPhotosInput{Date: today})
	if err != nil {
		return nil, storageError("list photos", err)
	}

	return &ListPhotosOutput{
		Date:   today,
		Photos: result.Photos,
	}, nil
}

// Ping reports whether the storage is reachable
func (s *service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return storageError("ping storage", err)
	}
	return nil
}

// begin reads the clock once and rolls day scoped data over when the calendar day
// changed
func (s *service) begin(ctx context.Context) (time.Time, string, error) {
	now := s.clock.Now()
	today := clock.Day(now, s.location)

	rollover, err := s.repo.Rollover(ctx, &tallyRepo.RolloverInput{Today: today})
	if err != nil {
		return time.Time{}, "", storageError("roll over day", err)
	}
	if rollover.RolledOver {
		s.logger.Info("Rolled over to a new day",
			zap.String("previous_date", rollover.PreviousDate),
			zap.String(logger.FieldDate, today))
	}

	return now, today, nil
}

// ensureParticipants seeds the default participants into an empty registry. The
// seed is stamped just before now so a participant added at now sorts after it.
func (s *service) ensureParticipants(ctx context.Context, now time.Time) error {
	base := now.UTC().Add(-time.Duration(len(s.defaults)) * time.Microsecond)

	seeded, err := s.repo.EnsureParticipants(ctx, &tallyRepo.EnsureParticipantsInput{
		Names:     s.defaults,
		CreatedAt: base,
	})
	if err != nil {
		return storageError("ensure default participants", err)
	}
	if seeded.Created {
		s.logger.Info("Seeded default participants", zap.Strings("participants", s.defaults))
	}

	return nil
}

// snapshot builds the tally view keyed by every registered participant, seeding the
// defaults first when the registry is empty. Counters of names that are not
// registered are left out.
func (s *service) snapshot(ctx context.Context, now time.Time, today string) (*models.Snapshot, error) {
	if err := s.ensureParticipants(ctx, now); err != nil {
		return nil, err
	}

	state, err := s.repo.GetState(ctx, &tallyRepo.GetStateInput{Today: today})
	if err != nil {
		return nil, storageError("load tally", err)
	}

	snapshot := &models.Snapshot{
		AllTimeCounts: make(map[string]int, len(state.Participants)),
		DailyCounts:   make(map[string]int, len(state.Participants)),
		Participants:  make([]string, 0, len(state.Participants)),
		Today:         today,
	}

	for _, participant := range state.Participants {
		name := participant.Name
		snapshot.Participants = append(snapshot.Participants, name)
		snapshot.AllTimeCounts[name] = state.AllTimeCounts[name]
		snapshot.DailyCounts[name] = state.DailyCounts[name]
	}

	if action := state.LastAction; action != nil && action.Participant != "" {
		participant := action.Participant
		snapshot.LastAction = &participant
		snapshot.CanUndo = action.CanUndo
	}

	return snapshot, nil
}

func storageError(operation string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", operation, ErrStorageUnavailable, err)
}

// NormalizeName trims and lowercases a participant name the way it is stored
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validName(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= MaxNameLength
}

func isRegistered(participants []*models.Participant, name string) bool {
	for _, p := range participants {
		if p.Name == name {
			return true
		}
	}
	return false
}
