package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/beertally/internal/models"
	"github.com/KirkDiggler/beertally/internal/services/messaging"
	"github.com/KirkDiggler/beertally/internal/services/tally"
	"github.com/KirkDiggler/beertally/pkg/logger"
)

// Subcommands of /beer
const (
	SubcommandTally      = "tally"
	SubcommandDrink      = "drink"
	SubcommandUndo       = "undo"
	SubcommandAdd        = "add"
	SubcommandRemove     = "remove"
	SubcommandResetAll   = "reset-all"
	SubcommandResetDaily = "reset-daily"
	SubcommandPhotos     = "photos"
)

const (
	optionName  = "name"
	optionPhoto = "photo"

	tallyTitle = "Beer Counter 🍺"
)

// BeerCommand handles the /beer command and the buttons on the tally message
type BeerCommand struct {
	BaseCommand
	tallyService     tally.Service
	messagingService messaging.Service
	logger           *zap.Logger
}

// beerRequest is a parsed /beer invocation
type beerRequest struct {
	Subcommand string
	Name       string
	Photo      string
}

// NewBeerCommand creates a new beer command handler
func NewBeerCommand(tallyService tally.Service, messagingService messaging.Service, log *zap.Logger) *BeerCommand {
	if log == nil {
		log = zap.NewNop()
	}

	nameOption := func(description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optionName,
			Description: description,
			Required:    true,
			MaxLength:   tally.MaxNameLength,
		}
	}

	return &BeerCommand{
		BaseCommand: BaseCommand{
			Name:        "beer",
			Description: "Shared beer counter",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandTally,
					Description: "Show the beer counter",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandDrink,
					Description: "Log a beer",
					Options: []*discordgo.ApplicationCommandOption{
						nameOption("Who is drinking"),
						{
							Type:        discordgo.ApplicationCommandOptionAttachment,
							Name:        optionPhoto,
							Description: "Proof",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandUndo,
					Description: "Take back the last beer",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandAdd,
					Description: "Add someone to the counter",
					Options:     []*discordgo.ApplicationCommandOption{nameOption("Name to add")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandRemove,
					Description: "Remove someone and their counts",
					Options:     []*discordgo.ApplicationCommandOption{nameOption("Name to remove")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandResetAll,
					Description: "Reset every count to zero",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandResetDaily,
					Description: "Reset today's counts",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandPhotos,
					Description: "List today's drink photos",
				},
			},
		},
		tallyService:     tallyService,
		messagingService: messagingService,
		logger:           log,
	}
}

// Handle processes a Discord interaction for the beer command
func (c *BeerCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	req, err := parseBeerRequest(data)
	if err != nil {
		return RespondWithError(s, i, "Unknown command", "Unknown beer command.")
	}

	c.logger.Debug("Handling beer command",
		zap.String(logger.FieldOperation, req.Subcommand),
		zap.String(logger.FieldParticipant, req.Name),
		zap.String("user", interactionUsername(i)))

	return RespondWithData(s, i, c.run(context.Background(), *req))
}

// HandleComponent processes a click on one of the tally buttons
func (c *BeerCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	var req beerRequest
	switch customID {
	case ButtonUndo:
		req.Subcommand = SubcommandUndo
	case ButtonRefresh:
		req.Subcommand = SubcommandTally
	default:
		name, ok := parseDrinkButtonID(customID)
		if !ok {
			return fmt.Errorf("unknown component %q", customID)
		}
		req.Subcommand = SubcommandDrink
		req.Name = name
	}

	data := c.run(context.Background(), req)
	if data.Flags&discordgo.MessageFlagsEphemeral != 0 {
		// Errors go to the clicker and leave the scoreboard alone
		return RespondWithData(s, i, data)
	}

	return UpdateWithData(s, i, data)
}

// parseBeerRequest reads the subcommand and its options
func parseBeerRequest(data discordgo.ApplicationCommandInteractionData) (*beerRequest, error) {
	if len(data.Options) == 0 {
		return nil, errors.New("missing subcommand")
	}

	sub := data.Options[0]
	req := &beerRequest{Subcommand: sub.Name}

	for _, opt := range sub.Options {
		switch opt.Name {
		case optionName:
			if opt.Type == discordgo.ApplicationCommandOptionString {
				req.Name = opt.StringValue()
			}
		case optionPhoto:
			id, ok := opt.Value.(string)
			if !ok || data.Resolved == nil {
				continue
			}
			if attachment, found := data.Resolved.Attachments[id]; found && attachment != nil {
				req.Photo = attachment.URL
			}
		}
	}

	return req, nil
}

// run executes a request and renders the reply, including failures
func (c *BeerCommand) run(ctx context.Context, req beerRequest) *discordgo.InteractionResponseData {
	switch req.Subcommand {
	case SubcommandTally:
		output, err := c.tallyService.GetSnapshot(ctx, &tally.GetSnapshotInput{})
		if err != nil {
			return c.failure(ctx, messaging.OperationSnapshot, "", err)
		}
		return renderTally(tallyTitle, "", output.Snapshot)

	case SubcommandDrink:
		output, err := c.tallyService.LogDrink(ctx, &tally.LogDrinkInput{
			Participant: req.Name,
			Photo:       req.Photo,
		})
		if err != nil {
			return c.failure(ctx, messaging.OperationLogDrink, tally.NormalizeName(req.Name), err)
		}
		name := tally.NormalizeName(req.Name)
		if output.Snapshot.LastAction != nil {
			name = *output.Snapshot.LastAction
		}
		msg, err := c.messagingService.GetDrinkMessage(ctx, &messaging.GetDrinkMessageInput{
			Participant: name,
			DailyCount:  output.Snapshot.DailyCounts[name],
			WithPhoto:   output.PhotoID != "",
		})
		if err != nil {
			return c.plainTally(err, output.Snapshot)
		}
		return renderTally(msg.Title, msg.Message, output.Snapshot)

	case SubcommandUndo:
		output, err := c.tallyService.Undo(ctx, &tally.UndoInput{})
		if err != nil {
			return c.failure(ctx, messaging.OperationUndo, "", err)
		}
		msg, err := c.messagingService.GetUndoMessage(ctx, &messaging.GetUndoMessageInput{
			Participant: output.Participant,
		})
		if err != nil {
			return c.plainTally(err, output.Snapshot)
		}
		return renderTally(msg.Title, msg.Message, output.Snapshot)

	case SubcommandAdd:
		output, err := c.tallyService.AddParticipant(ctx, &tally.AddParticipantInput{Name: req.Name})
		if err != nil {
			return c.failure(ctx, messaging.OperationAddParticipant, tally.NormalizeName(req.Name), err)
		}
		msg, err := c.messagingService.GetParticipantMessage(ctx, &messaging.GetParticipantMessageInput{
			Participant: output.Participant,
		})
		if err != nil {
			return c.plainTally(err, output.Snapshot)
		}
		return renderTally(msg.Title, msg.Message, output.Snapshot)

	case SubcommandRemove:
		output, err := c.tallyService.RemoveParticipant(ctx, &tally.RemoveParticipantInput{Name: req.Name})
		if err != nil {
			return c.failure(ctx, messaging.OperationRemoveParticipant, tally.NormalizeName(req.Name), err)
		}
		msg, err := c.messagingService.GetParticipantMessage(ctx, &messaging.GetParticipantMessageInput{
			Participant: output.Participant,
			Removed:     true,
		})
		if err != nil {
			return c.plainTally(err, output.Snapshot)
		}
		return renderTally(msg.Title, msg.Message, output.Snapshot)

	case SubcommandResetAll:
		output, err := c.tallyService.ResetAll(ctx, &tally.ResetAllInput{})
		if err != nil {
			return c.failure(ctx, messaging.OperationResetAll, "", err)
		}
		msg, err := c.messagingService.GetResetMessage(ctx, &messaging.GetResetMessageInput{})
		if err != nil {
			return c.plainTally(err, output.Snapshot)
		}
		return renderTally(msg.Title, msg.Message, output.Snapshot)

	case SubcommandResetDaily:
		output, err := c.tallyService.ResetDaily(ctx, &tally.ResetDailyInput{})
		if err != nil {
			return c.failure(ctx, messaging.OperationResetDaily, "", err)
		}
		msg, err := c.messagingService.GetResetMessage(ctx, &messaging.GetResetMessageInput{Daily: true})
		if err != nil {
			return c.plainTally(err, output.Snapshot)
		}
		return renderTally(msg.Title, msg.Message, output.Snapshot)

	case SubcommandPhotos:
		output, err := c.tallyService.ListPhotos(ctx, &tally.ListPhotosInput{})
		if err != nil {
			return c.failure(ctx, messaging.OperationListPhotos, "", err)
		}
		return renderPhotos(output)
	}

	return renderError("Unknown command", fmt.Sprintf("I don't know how to %q.", req.Subcommand))
}

// plainTally renders the scoreboard when no message could be built
func (c *BeerCommand) plainTally(msgErr error, snapshot *models.Snapshot) *discordgo.InteractionResponseData {
	c.logger.Warn("Failed to build message", zap.Error(msgErr))
	return renderTally(tallyTitle, "", snapshot)
}

func (c *BeerCommand) failure(ctx context.Context, op messaging.Operation, participant string, err error) *discordgo.InteractionResponseData {
	if errors.Is(err, tally.ErrStorageUnavailable) {
		c.logger.Error("Tally operation failed",
			zap.String(logger.FieldOperation, string(op)),
			zap.String(logger.FieldParticipant, participant),
			zap.Error(err))
	}

	msg, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Operation:   op,
		Participant: participant,
		Err:         err,
	})
	if msgErr != nil {
		return renderError("Error", err.Error())
	}

	return renderError(msg.Title, msg.Message)
}
