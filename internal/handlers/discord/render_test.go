package discord

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/beertally/internal/models"
	"github.com/KirkDiggler/beertally/internal/services/tally"
)

type RenderTestSuite struct {
	suite.Suite
}

func TestRenderTestSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func snapshotFor(names ...string) *models.Snapshot {
	snapshot := &models.Snapshot{
		AllTimeCounts: map[string]int{},
		DailyCounts:   map[string]int{},
		Participants:  names,
		Today:         "2025-04-19",
	}
	for _, name := range names {
		snapshot.AllTimeCounts[name] = 0
		snapshot.DailyCounts[name] = 0
	}
	return snapshot
}

func buttonsOf(component discordgo.MessageComponent) []discordgo.Button {
	row := component.(discordgo.ActionsRow)
	buttons := make([]discordgo.Button, 0, len(row.Components))
	for _, c := range row.Components {
		buttons = append(buttons, c.(discordgo.Button))
	}
	return buttons
}

func (s *RenderTestSuite) TestDrinkButtonID() {
	id := drinkButtonID("nick")
	s.Equal("beer_drink:nick", id)

	name, ok := parseDrinkButtonID(id)
	s.True(ok)
	s.Equal("nick", name)

	_, ok = parseDrinkButtonID(ButtonDrinkPrefix)
	s.False(ok)
	_, ok = parseDrinkButtonID(ButtonUndo)
	s.False(ok)
}

func (s *RenderTestSuite) TestRenderTally() {
	snapshot := snapshotFor("aaron", "nick")
	snapshot.AllTimeCounts["nick"] = 7
	snapshot.DailyCounts["nick"] = 2
	last := "nick"
	snapshot.LastAction = &last
	snapshot.CanUndo = true

	data := renderTally("Cheers! 🍻", "Added a beer for nick.", snapshot)
	s.Require().Len(data.Embeds, 1)

	embed := data.Embeds[0]
	s.Equal("Cheers! 🍻", embed.Title)
	s.Equal("Added a beer for nick.", embed.Description)
	s.Equal("Today is 2025-04-19", embed.Footer.Text)
	s.Require().Len(embed.Fields, 2)
	s.Equal("nick", embed.Fields[1].Name)
	s.Equal("🍺 2 today\n🏆 7 all-time", embed.Fields[1].Value)

	s.Require().Len(data.Components, 2)
	drinks := buttonsOf(data.Components[0])
	s.Equal("beer_drink:aaron", drinks[0].CustomID)
	s.Equal("beer_drink:nick", drinks[1].CustomID)

	controls := buttonsOf(data.Components[1])
	s.Equal(ButtonUndo, controls[0].CustomID)
	s.Equal("Undo nick", controls[0].Label)
	s.False(controls[0].Disabled)
	s.Equal(ButtonRefresh, controls[1].CustomID)
}

func (s *RenderTestSuite) TestRenderTallyUndoDisabled() {
	data := renderTally(tallyTitle, "", snapshotFor("sam"))

	controls := buttonsOf(data.Components[len(data.Components)-1])
	s.True(controls[0].Disabled)
	s.Equal("Undo", controls[0].Label)
}

func (s *RenderTestSuite) TestRenderTallyEmpty() {
	data := renderTally(tallyTitle, "", snapshotFor())

	s.Contains(data.Embeds[0].Description, "/beer add")
	s.Len(data.Components, 1)
}

func (s *RenderTestSuite) TestTallyComponentsRows() {
	tests := []struct {
		participants int
		rows         []int
	}{
		{participants: 5, rows: []int{5}},
		{participants: 6, rows: []int{5, 1}},
		{participants: 20, rows: []int{5, 5, 5, 5}},
		{participants: 23, rows: []int{5, 5, 5, 5}},
	}

	for _, tt := range tests {
		s.Run(fmt.Sprintf("%d participants", tt.participants), func() {
			names := make([]string, tt.participants)
			for idx := range names {
				names[idx] = fmt.Sprintf("p%d", idx)
			}

			components := tallyComponents(snapshotFor(names...))
			s.Require().Len(components, len(tt.rows)+1)
			for idx, size := range tt.rows {
				s.Len(buttonsOf(components[idx]), size)
			}
			s.Len(buttonsOf(components[len(tt.rows)]), 2)
		})
	}
}

func (s *RenderTestSuite) TestTallyComponentsSkipsOverlongCustomID() {
	long := strings.Repeat("x", maxCustomIDLength)
	components := tallyComponents(snapshotFor("aaron", long, "nick"))

	drinks := buttonsOf(components[0])
	s.Require().Len(drinks, 2)
	s.Equal("beer_drink:aaron", drinks[0].CustomID)
	s.Equal("beer_drink:nick", drinks[1].CustomID)
}

func (s *RenderTestSuite) TestRenderPhotos() {
	taken := time.Date(2025, 4, 19, 18, 5, 0, 0, time.UTC)

	data := renderPhotos(&tally.ListPhotosOutput{
		Date: "2025-04-19",
		Photos: []*models.DrinkPhoto{
			{ID: "2", Participant: "sam", ImageData: "https://cdn.example.com/sam.png", Timestamp: taken},
			{ID: "1", Participant: "aj", ImageData: "data:image/png;base64,AAAA", Timestamp: taken.Add(-time.Hour)},
		},
	})

	embed := data.Embeds[0]
	s.Equal("Drink photos for 2025-04-19", embed.Title)
	s.Equal("[sam at 18:05](https://cdn.example.com/sam.png)\naj at 17:05", embed.Description)
	s.Require().NotNil(embed.Image)
	s.Equal("https://cdn.example.com/sam.png", embed.Image.URL)

	empty := renderPhotos(&tally.ListPhotosOutput{Date: "2025-04-19"})
	s.Equal("No photos yet today.", empty.Embeds[0].Description)
	s.Nil(empty.Embeds[0].Image)
}

func (s *RenderTestSuite) TestRenderError() {
	data := renderError("Nothing to undo", "Nothing to undo.")

	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Equal("Nothing to undo", data.Embeds[0].Title)
	s.Empty(data.Components)
}
