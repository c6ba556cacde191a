package tally

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/KirkDiggler/beertally/internal/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// GormConfig holds configuration for the SQL tally repository
type GormConfig struct {
	// Open database handle
	DB *gorm.DB

	// Goose dialect used for migrations ("sqlite3" or "postgres")
	Dialect string

	Logger *zap.Logger
}

// gormRepository implements the Repository interface on top of gorm
type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// OpenGorm opens a gorm handle for the given driver and returns the matching goose dialect
func OpenGorm(driver, dsn string) (*gorm.DB, string, error) {
	var (
		dialector gorm.Dialector
		dialect   string
	)

	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
		dialect = "sqlite3"
	case DriverPostgres:
		dialector = postgres.Open(dsn)
		dialect = "postgres"
	default:
		return nil, "", fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	return db, dialect, nil
}

// NewGorm creates a SQL-backed tally repository and applies pending migrations
func NewGorm(cfg *GormConfig) (*gormRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("database cannot be nil")
	}

	if cfg.Dialect == "" {
		return nil, errors.New("dialect cannot be empty")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sqlDB, err := cfg.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(sqlDB, cfg.Dialect, logger); err != nil {
		return nil, err
	}

	return &gormRepository{
		db:     cfg.DB,
		logger: logger,
	}, nil
}

// Ping checks the database connection
func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// EnsureParticipants writes the default participants if the registry is empty
func (r *gormRepository) EnsureParticipants(ctx context.Context, input *EnsureParticipantsInput) (*EnsureParticipantsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.Names) == 0 {
		return &EnsureParticipantsOutput{}, nil
	}

	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&participantRow{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		// Offsets keep the defaults in the order given
		rows := make([]participantRow, 0, len(input.Names))
		base := input.CreatedAt.UTC()
		for i, name := range input.Names {
			rows = append(rows, participantRow{
				Name:      name,
				CreatedAt: base.Add(time.Duration(i) * time.Microsecond),
			})
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return err
		}

		created = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure participants: %w", err)
	}

	return &EnsureParticipantsOutput{Created: created}, nil
}

// Rollover purges daily counters and photos that are not from today
func (r *gormRepository) Rollover(ctx context.Context, input *RolloverInput) (*RolloverOutput, error) {
	if input == nil || input.Today == "" {
		return nil, errors.New("input and today cannot be empty")
	}

	output := &RolloverOutput{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		*output = RolloverOutput{}

		var marker dayMarkerRow
		result := tx.Where("id = ?", dayMarkerID).Limit(1).Find(&marker)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 && marker.Date == input.Today {
			return nil
		}
		output.PreviousDate = marker.Date

		if err := tx.Where("date <> ?", input.Today).Delete(&dailyCountRow{}).Error; err != nil {
			return err
		}

		if err := tx.Where("date <> ?", input.Today).Delete(&drinkPhotoRow{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&lastActionRow{}).
			Where("id = ?", lastActionID).
			Update("can_undo", false).Error; err != nil {
			return err
		}

		marker = dayMarkerRow{ID: dayMarkerID, Date: input.Today}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"date"}),
		}).Create(&marker).Error; err != nil {
			return err
		}

		output.RolledOver = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to roll over to %s: %w", input.Today, err)
	}

	if output.RolledOver {
		r.logger.Debug("Rolled over tally day",
			zap.String("previous", output.PreviousDate),
			zap.String("today", input.Today))
	}

	return output, nil
}

// GetState reads participants, counters and the last action in one transaction
func (r *gormRepository) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil || input.Today == "" {
		return nil, errors.New("input and today cannot be empty")
	}

	output := &GetStateOutput{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participants []participantRow
		if err := tx.Order("created_at ASC").Order("name ASC").Find(&participants).Error; err != nil {
			return err
		}

		var allTime []allTimeCountRow
		if err := tx.Find(&allTime).Error; err != nil {
			return err
		}

		var daily []dailyCountRow
		if err := tx.Where("date = ?", input.Today).Find(&daily).Error; err != nil {
			return err
		}

		var lastAction lastActionRow
		result := tx.Where("id = ?", lastActionID).Limit(1).Find(&lastAction)
		if result.Error != nil {
			return result.Error
		}

		output.Participants = make([]*models.Participant, 0, len(participants))
		for _, row := range participants {
			output.Participants = append(output.Participants, &models.Participant{
				Name:      row.Name,
				CreatedAt: row.CreatedAt.UTC(),
			})
		}

		output.AllTimeCounts = make(map[string]int, len(allTime))
		for _, row := range allTime {
			output.AllTimeCounts[row.Participant] = row.Total
		}

		output.DailyCounts = make(map[string]int, len(daily))
		for _, row := range daily {
			output.DailyCounts[row.Participant] = row.Total
		}

		if result.RowsAffected > 0 {
			output.LastAction = lastAction.toModel()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tally state: %w", err)
	}

	return output, nil
}

// LogDrink increments the all-time and daily counters, stores the photo and records
// the last action in one transaction.
func (r *gormRepository) LogDrink(ctx context.Context, input *LogDrinkInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if input.Participant == "" || input.Today == "" {
		return errors.New("participant and today cannot be empty")
	}

	if input.Photo != nil && input.Photo.ID == "" {
		return errors.New("photo ID cannot be empty")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		allTime := allTimeCountRow{Participant: input.Participant, Total: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "participant"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total": gorm.Expr("all_time_counts.total + ?", 1),
			}),
		}).Create(&allTime).Error; err != nil {
			return err
		}

		daily := dailyCountRow{Participant: input.Participant, Date: input.Today, Total: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "participant"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total": gorm.Expr("daily_counts.total + ?", 1),
			}),
		}).Create(&daily).Error; err != nil {
			return err
		}

		if input.Photo != nil {
			photo := drinkPhotoRow{
				ID:          input.Photo.ID,
				Participant: input.Photo.Participant,
				ImageData:   input.Photo.ImageData,
				Date:        input.Photo.Date,
				TakenAt:     input.Photo.Timestamp.UTC(),
			}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}

		return saveLastAction(tx, &lastActionRow{
			ID:          lastActionID,
			Participant: input.Participant,
			CanUndo:     true,
			Date:        input.Today,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to log drink: %w", err)
	}

	return nil
}

// Undo reverts the last action. The undo flag is claimed first so concurrent undos
// cannot both succeed.
func (r *gormRepository) Undo(ctx context.Context, input *UndoInput) (*UndoOutput, error) {
	if input == nil || input.Today == "" {
		return nil, errors.New("input and today cannot be empty")
	}

	var output *UndoOutput
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&lastActionRow{}).
			Where("id = ? AND can_undo = ? AND participant <> ?", lastActionID, true, "").
			Update("can_undo", false)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrNothingToUndo
		}

		var row lastActionRow
		if err := tx.Where("id = ?", lastActionID).First(&row).Error; err != nil {
			return err
		}
		action := row.toModel()

		decrement := map[string]interface{}{
			"total": gorm.Expr("CASE WHEN total > 0 THEN total - 1 ELSE 0 END"),
		}

		if err := tx.Model(&allTimeCountRow{}).
			Where("participant = ?", action.Participant).
			Updates(decrement).Error; err != nil {
			return err
		}

		var photoID string
		if action.IsFromToday(input.Today) {
			if err := tx.Model(&dailyCountRow{}).
				Where("participant = ? AND date = ?", action.Participant, input.Today).
				Updates(decrement).Error; err != nil {
				return err
			}

			var photo drinkPhotoRow
			result := tx.Where("participant = ? AND date = ?", action.Participant, input.Today).
				Order("taken_at DESC").
				Limit(1).
				Find(&photo)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				if err := tx.Delete(&drinkPhotoRow{}, "id = ?", photo.ID).Error; err != nil {
					return err
				}
				photoID = photo.ID
			}
		}

		output = &UndoOutput{
			LastAction: action,
			PhotoID:    photoID,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNothingToUndo) {
			return nil, ErrNothingToUndo
		}
		return nil, fmt.Errorf("failed to undo last action: %w", err)
	}

	return output, nil
}

// AddParticipant inserts a participant row
func (r *gormRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	if input.Participant.Name == "" {
		return errors.New("participant name cannot be empty")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&participantRow{}).
			Where("name = ?", input.Participant.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrParticipantExists
		}

		return tx.Create(&participantRow{
			Name:      input.Participant.Name,
			CreatedAt: input.Participant.CreatedAt.UTC(),
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrParticipantExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrParticipantExists
		}
		return fmt.Errorf("failed to add participant: %w", err)
	}

	return nil
}

// RemoveParticipant deletes a participant with all of its counters. Photos are kept.
func (r *gormRepository) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("name = ?", input.Name).Delete(&participantRow{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0

		if err := tx.Where("participant = ?", input.Name).Delete(&allTimeCountRow{}).Error; err != nil {
			return err
		}

		return tx.Where("participant = ?", input.Name).Delete(&dailyCountRow{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove participant: %w", err)
	}

	return &RemoveParticipantOutput{Removed: removed}, nil
}

// ResetAll zeroes the all-time counters of registered participants, clears today's
// counters and photos and clears the last action.
func (r *gormRepository) ResetAll(ctx context.Context, input *ResetAllInput) error {
	if input == nil || input.Today == "" {
		return errors.New("input and today cannot be empty")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var names []string
		if err := tx.Model(&participantRow{}).Pluck("name", &names).Error; err != nil {
			return err
		}

		if len(names) > 0 {
			rows := make([]allTimeCountRow, 0, len(names))
			for _, name := range names {
				rows = append(rows, allTimeCountRow{Participant: name, Total: 0})
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "participant"}},
				DoUpdates: clause.AssignmentColumns([]string{"total"}),
			}).Create(&rows).Error; err != nil {
				return err
			}
		}

		if err := clearDay(tx, input.Today); err != nil {
			return err
		}

		return saveLastAction(tx, &lastActionRow{
			ID:          lastActionID,
			Participant: "",
			CanUndo:     false,
			Date:        input.Today,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to reset all counts: %w", err)
	}

	return nil
}

// ResetDaily clears today's counters and photos
func (r *gormRepository) ResetDaily(ctx context.Context, input *ResetDailyInput) error {
	if input == nil || input.Today == "" {
		return errors.New("input and today cannot be empty")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return clearDay(tx, input.Today)
	})
	if err != nil {
		return fmt.Errorf("failed to reset daily counts: %w", err)
	}

	return nil
}

// ListPhotos returns the photos for a day, most recent first
func (r *gormRepository) ListPhotos(ctx context.Context, input *ListPhotosInput) (*ListPhotosOutput, error) {
	if input == nil || input.Date == "" {
		return nil, errors.New("input and date cannot be empty")
	}

	var rows []drinkPhotoRow
	if err := r.db.WithContext(ctx).
		Where("date = ?", input.Date).
		Order("taken_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list photos for %s: %w", input.Date, err)
	}

	photos := make([]*models.DrinkPhoto, 0, len(rows))
	for i := range rows {
		photos = append(photos, rows[i].toModel())
	}

	return &ListPhotosOutput{Photos: photos}, nil
}

func clearDay(tx *gorm.DB, date string) error {
	if err := tx.Where("date = ?", date).Delete(&dailyCountRow{}).Error; err != nil {
		return err
	}
	return tx.Where("date = ?", date).Delete(&drinkPhotoRow{}).Error
}

func saveLastAction(tx *gorm.DB, row *lastActionRow) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"participant", "can_undo", "date"}),
	}).Create(row).Error
}
