package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/beertally/internal/models"
	"github.com/KirkDiggler/beertally/internal/services/tally"
)

// Component custom IDs
const (
	ButtonDrinkPrefix = "beer_drink:"
	ButtonUndo        = "beer_undo"
	ButtonRefresh     = "beer_refresh"
)

const (
	colorTally = 0xf2a900
	colorError = 0xff0000

	// Discord allows five rows of five buttons. The last row holds undo and refresh.
	maxButtonsPerRow   = 5
	maxParticipantRows = 4
	maxEmbedFields     = 25
	maxCustomIDLength  = 100
)

// drinkButtonID builds the custom ID of a participant's drink button
func drinkButtonID(name string) string {
	return ButtonDrinkPrefix + name
}

// parseDrinkButtonID returns the participant of a drink button
func parseDrinkButtonID(customID string) (string, bool) {
	name, ok := strings.CutPrefix(customID, ButtonDrinkPrefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// renderTally builds the scoreboard message for a snapshot
func renderTally(title, message string, snapshot *models.Snapshot) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorTally,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Today is " + snapshot.Today,
		},
	}

	for idx, name := range snapshot.Participants {
		if idx == maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  fmt.Sprintf("🍺 %d today\n🏆 %d all-time", snapshot.DailyCounts[name], snapshot.AllTimeCounts[name]),
			Inline: true,
		})
	}

	if len(snapshot.Participants) == 0 {
		embed.Description = strings.TrimSpace(embed.Description + "\nNobody is on the counter. Use `/beer add` to add someone.")
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: tallyComponents(snapshot),
	}
}

// tallyComponents lays out one drink button per participant followed by the undo row
func tallyComponents(snapshot *models.Snapshot) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent

	for _, name := range snapshot.Participants {
		if len(rows) == maxParticipantRows {
			break
		}
		if len(drinkButtonID(name)) > maxCustomIDLength {
			continue
		}
		row = append(row, discordgo.Button{
			Label:    name,
			Style:    discordgo.PrimaryButton,
			CustomID: drinkButtonID(name),
			Emoji: &discordgo.ComponentEmoji{
				Name: "🍺",
			},
		})
		if len(row) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 && len(rows) < maxParticipantRows {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}

	undoLabel := "Undo"
	if snapshot.LastAction != nil {
		undoLabel = "Undo " + *snapshot.LastAction
	}

	rows = append(rows, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    undoLabel,
				Style:    discordgo.DangerButton,
				CustomID: ButtonUndo,
				Disabled: !snapshot.CanUndo,
				Emoji: &discordgo.ComponentEmoji{
					Name: "↩️",
				},
			},
			discordgo.Button{
				Label:    "Refresh",
				Style:    discordgo.SecondaryButton,
				CustomID: ButtonRefresh,
				Emoji: &discordgo.ComponentEmoji{
					Name: "🔄",
				},
			},
		},
	})

	return rows
}

// renderPhotos lists who sent a photo today, newest first
func renderPhotos(output *tally.ListPhotosOutput) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "Drink photos for " + output.Date,
		Color: colorTally,
	}

	if len(output.Photos) == 0 {
		embed.Description = "No photos yet today."
	} else {
		lines := make([]string, 0, len(output.Photos))
		for _, photo := range output.Photos {
			line := fmt.Sprintf("%s at %s", photo.Participant, photo.Timestamp.Format("15:04"))
			if strings.HasPrefix(photo.ImageData, "http") {
				line = fmt.Sprintf("[%s](%s)", line, photo.ImageData)
			}
			lines = append(lines, line)
		}
		embed.Description = strings.Join(lines, "\n")

		if latest := output.Photos[0]; strings.HasPrefix(latest.ImageData, "http") {
			embed.Image = &discordgo.MessageEmbedImage{URL: latest.ImageData}
		}
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
}

// renderError builds an error embed only the caller can see
func renderError(title, message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       title,
				Description: message,
				Color:       colorError,
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}
