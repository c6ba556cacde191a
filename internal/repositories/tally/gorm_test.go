package tally

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GormRepositoryTestSuite struct {
	repositoryTestSuite
	db *gorm.DB
}

func (s *GormRepositoryTestSuite) SetupTest() {
	// Each test gets its own database file
	dsn := filepath.Join(s.T().TempDir(), "tally.db")

	db, dialect, err := OpenGorm(DriverSQLite, dsn)
	s.Require().NoError(err)
	s.db = db

	repo, err := NewGorm(&GormConfig{
		DB:      db,
		Dialect: dialect,
		Logger:  zap.NewNop(),
	})
	s.Require().NoError(err)
	s.setupShared(repo)
}

func (s *GormRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func TestGormRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormRepositoryTestSuite))
}

func (s *GormRepositoryTestSuite) TestNewGormValidation() {
	_, err := NewGorm(nil)
	s.Error(err)

	_, err = NewGorm(&GormConfig{})
	s.Error(err)

	_, err = NewGorm(&GormConfig{DB: s.db})
	s.Error(err)
}

func (s *GormRepositoryTestSuite) TestOpenGormUnknownDriver() {
	_, _, err := OpenGorm("mongo", "")
	s.Error(err)
}

func (s *GormRepositoryTestSuite) TestMigrationsAreIdempotent() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)

	s.NoError(Migrate(sqlDB, "sqlite3", nil))

	s.True(s.db.Migrator().HasTable(&drinkPhotoRow{}))
	s.True(s.db.Migrator().HasTable(&lastActionRow{}))
}

func (s *GormRepositoryTestSuite) TestRolloverMovesMarker() {
	_, err := s.repo.Rollover(s.ctx, &RolloverInput{Today: testToday})
	s.Require().NoError(err)

	var marker dayMarkerRow
	s.Require().NoError(s.db.First(&marker, "id = ?", dayMarkerID).Error)
	s.Equal(testToday, marker.Date)
}
