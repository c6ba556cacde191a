package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/beertally/internal/services/tally"
)

// service implements the Service interface
type service struct {
	// mu guards rand, which is not safe for concurrent use
	mu   sync.Mutex
	rand *rand.Rand
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	r := cfg.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{
		rand: r,
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

// GetDrinkMessage returns a cheer for a logged drink. Milestones get their own lines.
func (s *service) GetDrinkMessage(ctx context.Context, input *GetDrinkMessageInput) (*GetDrinkMessageOutput, error) {
	if input == nil || input.Participant == "" {
		return nil, errors.New("participant cannot be empty")
	}

	name := input.Participant
	var messages []string

	switch {
	case input.DailyCount == 1:
		messages = []string{
			fmt.Sprintf("%s is on the board! First one of the day.", name),
			fmt.Sprintf("And we're off! %s cracks the first one.", name),
			fmt.Sprintf("%s breaks the seal. Cheers!", name),
		}
	case input.DailyCount >= 10:
		messages = []string{
			fmt.Sprintf("%s is at %d today. Someone get this legend a glass of water.", name, input.DailyCount),
			fmt.Sprintf("%d for %s today! The tally is running out of ink.", input.DailyCount, name),
			fmt.Sprintf("%s hits %d. We'll tell the story tomorrow, if anyone remembers.", name, input.DailyCount),
		}
	case input.DailyCount%5 == 0 && input.DailyCount > 0:
		messages = []string{
			fmt.Sprintf("High five! %s is at %d today.", name, input.DailyCount),
			fmt.Sprintf("%d for %s. That's a full hand!", input.DailyCount, name),
		}
	default:
		messages = []string{
			fmt.Sprintf("Added a beer for %s.", name),
			fmt.Sprintf("Another one for %s. Keep them coming!", name),
			fmt.Sprintf("%s is thirsty today. That makes %d.", name, input.DailyCount),
			fmt.Sprintf("Cheers, %s! Number %d is in the books.", name, input.DailyCount),
		}
	}

	message := s.pick(messages)
	if input.WithPhoto {
		message += " Photo saved for the wall of fame."
	}

	return &GetDrinkMessageOutput{
		Title:   "Cheers! 🍻",
		Message: message,
	}, nil
}

// GetUndoMessage returns a message for an undone drink
func (s *service) GetUndoMessage(ctx context.Context, input *GetUndoMessageInput) (*GetUndoMessageOutput, error) {
	if input == nil || input.Participant == "" {
		return nil, errors.New("participant cannot be empty")
	}

	name := input.Participant
	messages := []string{
		fmt.Sprintf("Undid beer for %s.", name),
		fmt.Sprintf("Fat fingers? Took one back from %s.", name),
		fmt.Sprintf("%s's last beer never happened. Our secret.", name),
	}

	return &GetUndoMessageOutput{
		Title:   "Undo successful",
		Message: s.pick(messages),
	}, nil
}

// GetParticipantMessage returns a message for an added or removed participant
func (s *service) GetParticipantMessage(ctx context.Context, input *GetParticipantMessageInput) (*GetParticipantMessageOutput, error) {
	if input == nil || input.Participant == "" {
		return nil, errors.New("participant cannot be empty")
	}

	if input.Removed {
		return &GetParticipantMessageOutput{
			Title:   "User removed",
			Message: fmt.Sprintf("%s has been removed from the beer counter.", input.Participant),
		}, nil
	}

	messages := []string{
		fmt.Sprintf("%s has been added to the beer counter.", input.Participant),
		fmt.Sprintf("Welcome aboard, %s! Your tally starts at zero.", input.Participant),
		fmt.Sprintf("Pull up a chair, %s. The counter is ready for you.", input.Participant),
	}

	return &GetParticipantMessageOutput{
		Title:   "User added",
		Message: s.pick(messages),
	}, nil
}

// GetResetMessage returns a message for a full or daily reset
func (s *service) GetResetMessage(ctx context.Context, input *GetResetMessageInput) (*GetResetMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Daily {
		return &GetResetMessageOutput{
			Title:   "Reset successful",
			Message: "Today's beer counts have been reset to zero.",
		}, nil
	}

	return &GetResetMessageOutput{
		Title:   "Reset successful",
		Message: "All beer counts have been reset to zero.",
	}, nil
}

// GetErrorMessage describes which operation failed and for whom. Rejections such as
// duplicates or an empty undo get their own wording.
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.Participant

	switch {
	case errors.Is(input.Err, tally.ErrNoUndoAvailable):
		return &GetErrorMessageOutput{
			Title: "Nothing to undo",
			Message: s.pick([]string{
				"Nothing to undo.",
				"There's no beer to take back. Drink one first!",
				"The last beer was already undone or reset.",
			}),
		}, nil
	case errors.Is(input.Err, tally.ErrDuplicateParticipant):
		return &GetErrorMessageOutput{
			Title:   "Error adding user",
			Message: fmt.Sprintf("User %s already exists.", name),
		}, nil
	case errors.Is(input.Err, tally.ErrInvalidParticipant):
		return &GetErrorMessageOutput{
			Title:   "Invalid name",
			Message: "Names must be 1 to 20 characters.",
		}, nil
	}

	switch input.Operation {
	case OperationLogDrink:
		return &GetErrorMessageOutput{
			Title:   "Error updating count",
			Message: fmt.Sprintf("Failed to increment beer for %s.", name),
		}, nil
	case OperationUndo:
		return &GetErrorMessageOutput{
			Title:   "Error undoing action",
			Message: "Failed to undo last action.",
		}, nil
	case OperationAddParticipant:
		return &GetErrorMessageOutput{
			Title:   "Error adding user",
			Message: fmt.Sprintf("Failed to add user %s.", name),
		}, nil
	case OperationRemoveParticipant:
		return &GetErrorMessageOutput{
			Title:   "Error removing user",
			Message: fmt.Sprintf("Failed to remove user %s.", name),
		}, nil
	case OperationResetAll:
		return &GetErrorMessageOutput{
			Title:   "Error resetting counts",
			Message: "Failed to reset counts.",
		}, nil
	case OperationResetDaily:
		return &GetErrorMessageOutput{
			Title:   "Error resetting daily counts",
			Message: "Failed to reset daily counts.",
		}, nil
	case OperationListPhotos:
		return &GetErrorMessageOutput{
			Title:   "Error loading photos",
			Message: "Failed to get drink photos.",
		}, nil
	default:
		return &GetErrorMessageOutput{
			Title:   "Error refreshing data",
			Message: "Failed to get beer counts.",
		}, nil
	}
}
