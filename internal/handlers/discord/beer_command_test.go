package discord

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/KirkDiggler/beertally/internal/services/messaging"
	"github.com/KirkDiggler/beertally/internal/services/tally"
	"github.com/KirkDiggler/beertally/internal/services/tally/mocks"
)

type BeerCommandTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockTally *mocks.MockService
	command   *BeerCommand
	ctx       context.Context
}

func (s *BeerCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockTally = mocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()

	msgService, err := messaging.New(&messaging.Config{Rand: rand.New(rand.NewSource(1))})
	s.Require().NoError(err)

	s.command = NewBeerCommand(s.mockTally, msgService, zap.NewNop())
}

func (s *BeerCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBeerCommandTestSuite(t *testing.T) {
	suite.Run(t, new(BeerCommandTestSuite))
}

func (s *BeerCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.GetCommand()
	s.Equal("beer", cmd.Name)

	var names []string
	for _, opt := range cmd.Options {
		names = append(names, opt.Name)
	}
	s.Equal([]string{"tally", "drink", "undo", "add", "remove", "reset-all", "reset-daily", "photos"}, names)
}

func (s *BeerCommandTestSuite) TestParseBeerRequest() {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "beer",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name: SubcommandDrink,
				Type: discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: optionName, Type: discordgo.ApplicationCommandOptionString, Value: "Nick"},
					{Name: optionPhoto, Type: discordgo.ApplicationCommandOptionAttachment, Value: "123"},
				},
			},
		},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Attachments: map[string]*discordgo.MessageAttachment{
				"123": {ID: "123", URL: "https://cdn.example.com/nick.png"},
			},
		},
	}

	req, err := parseBeerRequest(data)
	s.Require().NoError(err)
	s.Equal(SubcommandDrink, req.Subcommand)
	s.Equal("Nick", req.Name)
	s.Equal("https://cdn.example.com/nick.png", req.Photo)

	_, err = parseBeerRequest(discordgo.ApplicationCommandInteractionData{Name: "beer"})
	s.Error(err)
}

func (s *BeerCommandTestSuite) TestRunDrink() {
	snapshot := snapshotFor("nick")
	snapshot.AllTimeCounts["nick"] = 1
	snapshot.DailyCounts["nick"] = 1
	last := "nick"
	snapshot.LastAction = &last
	snapshot.CanUndo = true

	s.mockTally.EXPECT().
		LogDrink(s.ctx, &tally.LogDrinkInput{Participant: "Nick"}).
		Return(&tally.LogDrinkOutput{Snapshot: snapshot}, nil)

	data := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandDrink, Name: "Nick"})

	s.Zero(data.Flags)
	s.Equal("Cheers! 🍻", data.Embeds[0].Title)
	s.Contains(data.Embeds[0].Description, "nick")
	s.Len(data.Components, 2)
}

func (s *BeerCommandTestSuite) TestRunUndoNothingToUndo() {
	s.mockTally.EXPECT().
		Undo(s.ctx, &tally.UndoInput{}).
		Return(nil, tally.ErrNoUndoAvailable)

	data := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandUndo})

	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Equal("Nothing to undo", data.Embeds[0].Title)
}

func (s *BeerCommandTestSuite) TestRunAddDuplicate() {
	s.mockTally.EXPECT().
		AddParticipant(s.ctx, &tally.AddParticipantInput{Name: "sam"}).
		Return(nil, fmt.Errorf("failed to add participant: %w", tally.ErrDuplicateParticipant))

	data := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandAdd, Name: "sam"})

	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Equal("User sam already exists.", data.Embeds[0].Description)
}

func (s *BeerCommandTestSuite) TestRunAddUsesStoredName() {
	s.mockTally.EXPECT().
		AddParticipant(s.ctx, &tally.AddParticipantInput{Name: " Beth "}).
		Return(&tally.AddParticipantOutput{Snapshot: snapshotFor("beth"), Participant: "beth"}, nil)

	data := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandAdd, Name: " Beth "})

	s.Equal("User added", data.Embeds[0].Title)
	s.Contains(data.Embeds[0].Description, "beth")
	s.NotContains(data.Embeds[0].Description, " Beth ")
}

func (s *BeerCommandTestSuite) TestRunAddTooLong() {
	s.mockTally.EXPECT().
		AddParticipant(s.ctx, gomock.Any()).
		Return(nil, tally.ErrInvalidParticipant)

	data := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandAdd, Name: "averyveryverylongname"})

	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Equal("Invalid name", data.Embeds[0].Title)
}

func (s *BeerCommandTestSuite) TestRunRemove() {
	s.mockTally.EXPECT().
		RemoveParticipant(s.ctx, &tally.RemoveParticipantInput{Name: "aj"}).
		Return(&tally.RemoveParticipantOutput{Snapshot: snapshotFor("nick"), Participant: "aj"}, nil)

	data := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandRemove, Name: "aj"})

	s.Equal("User removed", data.Embeds[0].Title)
	s.Equal("aj has been removed from the beer counter.", data.Embeds[0].Description)
}

func (s *BeerCommandTestSuite) TestRunResets() {
	s.mockTally.EXPECT().
		ResetAll(s.ctx, &tally.ResetAllInput{}).
		Return(&tally.ResetAllOutput{Snapshot: snapshotFor("nick")}, nil)
	s.mockTally.EXPECT().
		ResetDaily(s.ctx, &tally.ResetDailyInput{}).
		Return(&tally.ResetDailyOutput{Snapshot: snapshotFor("nick")}, nil)

	all := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandResetAll})
	s.Equal("All beer counts have been reset to zero.", all.Embeds[0].Description)

	daily := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandResetDaily})
	s.Equal("Today's beer counts have been reset to zero.", daily.Embeds[0].Description)
}

func (s *BeerCommandTestSuite) TestRunTallyStorageFailure() {
	s.mockTally.EXPECT().
		GetSnapshot(s.ctx, &tally.GetSnapshotInput{}).
		Return(nil, fmt.Errorf("failed to get snapshot: %w: %w", tally.ErrStorageUnavailable, errors.New("connection refused")))

	data := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandTally})

	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Equal("Error refreshing data", data.Embeds[0].Title)
	s.Equal("Failed to get beer counts.", data.Embeds[0].Description)
}

func (s *BeerCommandTestSuite) TestRunPhotos() {
	s.mockTally.EXPECT().
		ListPhotos(s.ctx, &tally.ListPhotosInput{}).
		Return(&tally.ListPhotosOutput{Date: "2025-04-19"}, nil)

	data := s.command.run(s.ctx, beerRequest{Subcommand: SubcommandPhotos})

	s.Equal("No photos yet today.", data.Embeds[0].Description)
}

func (s *BeerCommandTestSuite) TestRunUnknownSubcommand() {
	data := s.command.run(s.ctx, beerRequest{Subcommand: "chug"})

	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
}
