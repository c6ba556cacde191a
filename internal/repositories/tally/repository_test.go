package tally

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/beertally/internal/models"
)

const (
	testToday     = "2025-04-05"
	testYesterday = "2025-04-04"
)

// repositoryTestSuite holds behaviour shared by every Repository implementation.
// Backend suites embed it and set repo in SetupTest.
type repositoryTestSuite struct {
	suite.Suite
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *repositoryTestSuite) setupShared(repo Repository) {
	s.repo = repo
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *repositoryTestSuite) seed(names ...string) {
	output, err := s.repo.EnsureParticipants(s.ctx, &EnsureParticipantsInput{
		Names:     names,
		CreatedAt: s.testNow,
	})
	s.Require().NoError(err)
	s.Require().True(output.Created)
}

func (s *repositoryTestSuite) logDrink(participant, today string, photo *models.DrinkPhoto) {
	s.Require().NoError(s.repo.LogDrink(s.ctx, &LogDrinkInput{
		Participant: participant,
		Today:       today,
		Photo:       photo,
	}))
}

func (s *repositoryTestSuite) state(today string) *GetStateOutput {
	output, err := s.repo.GetState(s.ctx, &GetStateInput{Today: today})
	s.Require().NoError(err)
	return output
}

func (s *repositoryTestSuite) photo(id, participant, date string, offset time.Duration) *models.DrinkPhoto {
	return &models.DrinkPhoto{
		ID:          id,
		Participant: participant,
		ImageData:   "data:image/jpeg;base64," + id,
		Date:        date,
		Timestamp:   s.testNow.Add(offset),
	}
}

func participantNames(participants []*models.Participant) []string {
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		names = append(names, p.Name)
	}
	return names
}

func photoIDs(photos []*models.DrinkPhoto) []string {
	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *repositoryTestSuite) TestPing() {
	s.NoError(s.repo.Ping(s.ctx))
}

func (s *repositoryTestSuite) TestEnsureParticipantsOnlyOnEmptyRegistry() {
	s.seed("aaron", "nick", "aj")

	output, err := s.repo.EnsureParticipants(s.ctx, &EnsureParticipantsInput{
		Names:     []string{"zed"},
		CreatedAt: s.testNow.Add(time.Hour),
	})
	s.Require().NoError(err)
	s.False(output.Created)

	state := s.state(testToday)
	s.Equal([]string{"aaron", "nick", "aj"}, participantNames(state.Participants))
	s.Empty(state.AllTimeCounts)
	s.Empty(state.DailyCounts)
	s.Nil(state.LastAction)
}

func (s *repositoryTestSuite) TestEnsureParticipantsAfterRemovingEveryone() {
	s.seed("aaron")

	_, err := s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{Name: "aaron"})
	s.Require().NoError(err)

	output, err := s.repo.EnsureParticipants(s.ctx, &EnsureParticipantsInput{
		Names:     []string{"nick"},
		CreatedAt: s.testNow,
	})
	s.Require().NoError(err)
	s.True(output.Created)
}

func (s *repositoryTestSuite) TestLogDrink() {
	s.seed("aaron", "nick")

	s.logDrink("aaron", testToday, nil)
	s.logDrink("aaron", testToday, nil)
	s.logDrink("nick", testToday, nil)

	state := s.state(testToday)
	s.Equal(2, state.AllTimeCounts["aaron"])
	s.Equal(1, state.AllTimeCounts["nick"])
	s.Equal(2, state.DailyCounts["aaron"])
	s.Equal(1, state.DailyCounts["nick"])

	s.Require().NotNil(state.LastAction)
	s.Equal("nick", state.LastAction.Participant)
	s.True(state.LastAction.CanUndo)
	s.Equal(testToday, state.LastAction.Date)
}

func (s *repositoryTestSuite) TestLogDrinkUnknownParticipant() {
	s.seed("aaron")

	s.logDrink("ghost", testToday, nil)

	state := s.state(testToday)
	s.Equal(1, state.AllTimeCounts["ghost"])
	s.Equal([]string{"aaron"}, participantNames(state.Participants))
}

func (s *repositoryTestSuite) TestLogDrinkWithPhoto() {
	s.seed("aaron")

	s.logDrink("aaron", testToday, s.photo("photo-1", "aaron", testToday, 0))
	s.logDrink("aaron", testToday, s.photo("photo-2", "aaron", testToday, time.Minute))

	output, err := s.repo.ListPhotos(s.ctx, &ListPhotosInput{Date: testToday})
	s.Require().NoError(err)
	s.Equal([]string{"photo-2", "photo-1"}, photoIDs(output.Photos))
	s.Equal("aaron", output.Photos[0].Participant)
	s.Equal("data:image/jpeg;base64,photo-2", output.Photos[0].ImageData)
	s.Equal(testToday, output.Photos[0].Date)
	s.True(s.testNow.Add(time.Minute).Equal(output.Photos[0].Timestamp))
}

func (s *repositoryTestSuite) TestListPhotosEmptyDay() {
	output, err := s.repo.ListPhotos(s.ctx, &ListPhotosInput{Date: testToday})
	s.Require().NoError(err)
	s.Empty(output.Photos)
}

func (s *repositoryTestSuite) TestUndo() {
	s.seed("aaron", "nick")

	s.logDrink("aaron", testToday, nil)
	s.logDrink("nick", testToday, nil)

	output, err := s.repo.Undo(s.ctx, &UndoInput{Today: testToday})
	s.Require().NoError(err)
	s.Equal("nick", output.LastAction.Participant)
	s.False(output.LastAction.CanUndo)
	s.Empty(output.PhotoID)

	state := s.state(testToday)
	s.Equal(1, state.AllTimeCounts["aaron"])
	s.Equal(0, state.AllTimeCounts["nick"])
	s.Equal(0, state.DailyCounts["nick"])
	s.Require().NotNil(state.LastAction)
	s.False(state.LastAction.CanUndo)

	// Only one step of history
	_, err = s.repo.Undo(s.ctx, &UndoInput{Today: testToday})
	s.ErrorIs(err, ErrNothingToUndo)

	state = s.state(testToday)
	s.Equal(1, state.AllTimeCounts["aaron"])
}

func (s *repositoryTestSuite) TestUndoWithoutHistory() {
	s.seed("aaron")

	_, err := s.repo.Undo(s.ctx, &UndoInput{Today: testToday})
	s.ErrorIs(err, ErrNothingToUndo)
}

func (s *repositoryTestSuite) TestUndoRemovesLatestPhoto() {
	s.seed("aaron", "nick")

	s.logDrink("aaron", testToday, s.photo("photo-1", "aaron", testToday, 0))
	s.logDrink("nick", testToday, s.photo("photo-2", "nick", testToday, time.Minute))
	s.logDrink("aaron", testToday, s.photo("photo-3", "aaron", testToday, 2*time.Minute))

	output, err := s.repo.Undo(s.ctx, &UndoInput{Today: testToday})
	s.Require().NoError(err)
	s.Equal("photo-3", output.PhotoID)

	photos, err := s.repo.ListPhotos(s.ctx, &ListPhotosInput{Date: testToday})
	s.Require().NoError(err)
	s.Equal([]string{"photo-2", "photo-1"}, photoIDs(photos.Photos))
}

func (s *repositoryTestSuite) TestUndoOnlyTouchesExistingCounters() {
	s.seed("aaron")

	s.logDrink("aaron", testToday, nil)
	s.Require().NoError(s.repo.ResetDaily(s.ctx, &ResetDailyInput{Today: testToday}))

	_, err := s.repo.Undo(s.ctx, &UndoInput{Today: testToday})
	s.Require().NoError(err)

	state := s.state(testToday)
	s.Equal(0, state.AllTimeCounts["aaron"])
	_, ok := state.DailyCounts["aaron"]
	s.False(ok)
}

func (s *repositoryTestSuite) TestUndoAfterResetAll() {
	s.seed("aaron")

	s.logDrink("aaron", testToday, nil)
	s.Require().NoError(s.repo.ResetAll(s.ctx, &ResetAllInput{Today: testToday}))

	// Reset clears the last action
	_, err := s.repo.Undo(s.ctx, &UndoInput{Today: testToday})
	s.ErrorIs(err, ErrNothingToUndo)

	state := s.state(testToday)
	s.Equal(0, state.AllTimeCounts["aaron"])
}

func (s *repositoryTestSuite) TestUndoActionFromPreviousDay() {
	s.seed("aaron")

	s.logDrink("aaron", testYesterday, nil)

	output, err := s.repo.Undo(s.ctx, &UndoInput{Today: testToday})
	s.Require().NoError(err)
	s.Equal("aaron", output.LastAction.Participant)

	s.Equal(0, s.state(testToday).AllTimeCounts["aaron"])
	s.Equal(1, s.state(testYesterday).DailyCounts["aaron"])
}

func (s *repositoryTestSuite) TestAddParticipant() {
	s.seed("aaron")

	err := s.repo.AddParticipant(s.ctx, &AddParticipantInput{
		Participant: &models.Participant{Name: "beth", CreatedAt: s.testNow.Add(time.Hour)},
	})
	s.Require().NoError(err)

	state := s.state(testToday)
	s.Equal([]string{"aaron", "beth"}, participantNames(state.Participants))
}

func (s *repositoryTestSuite) TestAddParticipantDuplicate() {
	s.seed("aaron")

	err := s.repo.AddParticipant(s.ctx, &AddParticipantInput{
		Participant: &models.Participant{Name: "aaron", CreatedAt: s.testNow.Add(time.Hour)},
	})
	s.ErrorIs(err, ErrParticipantExists)

	s.Len(s.state(testToday).Participants, 1)
}

func (s *repositoryTestSuite) TestRemoveParticipant() {
	s.seed("aaron", "nick")

	s.logDrink("aaron", testYesterday, nil)
	s.logDrink("aaron", testToday, s.photo("photo-1", "aaron", testToday, 0))

	output, err := s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{Name: "aaron"})
	s.Require().NoError(err)
	s.True(output.Removed)

	state := s.state(testToday)
	s.Equal([]string{"nick"}, participantNames(state.Participants))
	_, ok := state.AllTimeCounts["aaron"]
	s.False(ok)
	_, ok = state.DailyCounts["aaron"]
	s.False(ok)
	_, ok = s.state(testYesterday).DailyCounts["aaron"]
	s.False(ok)

	// Photos outlive the participant
	photos, err := s.repo.ListPhotos(s.ctx, &ListPhotosInput{Date: testToday})
	s.Require().NoError(err)
	s.Equal([]string{"photo-1"}, photoIDs(photos.Photos))
}

func (s *repositoryTestSuite) TestRemoveUnknownParticipant() {
	s.seed("aaron")

	output, err := s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{Name: "ghost"})
	s.Require().NoError(err)
	s.False(output.Removed)
	s.Len(s.state(testToday).Participants, 1)
}

func (s *repositoryTestSuite) TestResetAll() {
	s.seed("aaron", "nick")

	s.logDrink("aaron", testToday, s.photo("photo-1", "aaron", testToday, 0))
	s.logDrink("nick", testToday, nil)

	s.Require().NoError(s.repo.ResetAll(s.ctx, &ResetAllInput{Today: testToday}))

	state := s.state(testToday)
	s.Equal(0, state.AllTimeCounts["aaron"])
	s.Equal(0, state.AllTimeCounts["nick"])
	s.Empty(state.DailyCounts)
	s.Require().NotNil(state.LastAction)
	s.Empty(state.LastAction.Participant)
	s.False(state.LastAction.CanUndo)

	photos, err := s.repo.ListPhotos(s.ctx, &ListPhotosInput{Date: testToday})
	s.Require().NoError(err)
	s.Empty(photos.Photos)
}

func (s *repositoryTestSuite) TestResetDaily() {
	s.seed("aaron")

	s.logDrink("aaron", testToday, s.photo("photo-1", "aaron", testToday, 0))
	s.logDrink("aaron", testToday, nil)

	s.Require().NoError(s.repo.ResetDaily(s.ctx, &ResetDailyInput{Today: testToday}))

	state := s.state(testToday)
	s.Equal(2, state.AllTimeCounts["aaron"])
	s.Empty(state.DailyCounts)

	// The last action survives a daily reset
	s.Require().NotNil(state.LastAction)
	s.True(state.LastAction.CanUndo)

	photos, err := s.repo.ListPhotos(s.ctx, &ListPhotosInput{Date: testToday})
	s.Require().NoError(err)
	s.Empty(photos.Photos)
}

func (s *repositoryTestSuite) TestRollover() {
	s.seed("aaron")

	first, err := s.repo.Rollover(s.ctx, &RolloverInput{Today: testYesterday})
	s.Require().NoError(err)
	s.True(first.RolledOver)
	s.Empty(first.PreviousDate)

	s.logDrink("aaron", testYesterday, s.photo("photo-1", "aaron", testYesterday, 0))

	output, err := s.repo.Rollover(s.ctx, &RolloverInput{Today: testToday})
	s.Require().NoError(err)
	s.True(output.RolledOver)
	s.Equal(testYesterday, output.PreviousDate)

	state := s.state(testToday)
	s.Equal(1, state.AllTimeCounts["aaron"])
	s.Empty(state.DailyCounts)
	s.Require().NotNil(state.LastAction)
	s.False(state.LastAction.CanUndo)

	s.Empty(s.state(testYesterday).DailyCounts)

	photos, err := s.repo.ListPhotos(s.ctx, &ListPhotosInput{Date: testYesterday})
	s.Require().NoError(err)
	s.Empty(photos.Photos)

	_, err = s.repo.Undo(s.ctx, &UndoInput{Today: testToday})
	s.ErrorIs(err, ErrNothingToUndo)
}

func (s *repositoryTestSuite) TestRolloverSameDay() {
	s.seed("aaron")

	_, err := s.repo.Rollover(s.ctx, &RolloverInput{Today: testToday})
	s.Require().NoError(err)

	s.logDrink("aaron", testToday, nil)

	output, err := s.repo.Rollover(s.ctx, &RolloverInput{Today: testToday})
	s.Require().NoError(err)
	s.False(output.RolledOver)

	state := s.state(testToday)
	s.Equal(1, state.DailyCounts["aaron"])
	s.True(state.LastAction.CanUndo)
}

func (s *repositoryTestSuite) TestNilInputs() {
	_, err := s.repo.EnsureParticipants(s.ctx, nil)
	s.Error(err)

	_, err = s.repo.GetState(s.ctx, &GetStateInput{})
	s.Error(err)

	s.Error(s.repo.LogDrink(s.ctx, nil))
	s.Error(s.repo.LogDrink(s.ctx, &LogDrinkInput{Participant: "aaron"}))
	s.Error(s.repo.AddParticipant(s.ctx, &AddParticipantInput{}))

	_, err = s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{})
	s.Error(err)
}
