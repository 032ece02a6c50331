package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/cardmap/internal/utils/ptr"
)

func TestDetailImageURL(t *testing.T) {
	c := Card{ID: "base1-4", Name: "Charizard", ImageURL: "https://images/4.png"}
	assert.Equal(t, "https://images/4.png", c.DetailImageURL())

	c.ImageURLHiRes = ptr.String("")
	assert.Equal(t, "https://images/4.png", c.DetailImageURL())

	c.ImageURLHiRes = ptr.String("https://images/4_hires.png")
	assert.Equal(t, "https://images/4_hires.png", c.DetailImageURL())
}

func TestDetailLines(t *testing.T) {
	tests := []struct {
		name   string
		card   Card
		typ    string
		hp     string
		rarity string
		set    string
		artist string
	}{
		{
			name:   "all absent",
			card:   Card{ID: "x", Name: "X"},
			typ:    "Unknown",
			hp:     "N/A",
			rarity: "Unknown",
			set:    "Unknown - #Unknown",
			artist: "Unknown",
		},
		{
			name: "all present",
			card: Card{
				ID: "base1-4", Name: "Charizard",
				Supertype: ptr.String("Pokémon"), Subtype: ptr.String("Stage 2"),
				HP: ptr.String("120"), Rarity: ptr.String("Rare Holo"),
				Set: ptr.String("Base"), Number: ptr.String("4"),
				Artist: ptr.String("Mitsuhiro Arita"),
			},
			typ:    "Pokémon - Stage 2",
			hp:     "120",
			rarity: "Rare Holo",
			set:    "Base - #4",
			artist: "Mitsuhiro Arita",
		},
		{
			name:   "supertype only",
			card:   Card{ID: "t", Name: "Bill", Supertype: ptr.String("Trainer")},
			typ:    "Trainer",
			hp:     "N/A",
			rarity: "Unknown",
			set:    "Unknown - #Unknown",
			artist: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.card.TypeLine())
			assert.Equal(t, tt.hp, tt.card.HPLine())
			assert.Equal(t, tt.rarity, tt.card.RarityLine())
			assert.Equal(t, tt.set, tt.card.SetLine())
			assert.Equal(t, tt.artist, tt.card.ArtistLine())
		})
	}
}

func TestDetails(t *testing.T) {
	c := Card{ID: "base1-1", Name: "Alakazam", ImageURL: "small.png"}
	details := c.Details()
	assert.Len(t, details, 7)
	assert.Equal(t, Detail{Label: "Name", Value: "Alakazam"}, details[0])
	assert.Equal(t, Detail{Label: "Image", Value: "small.png"}, details[6])
}

func TestIDsAndNames(t *testing.T) {
	cs := []Card{{ID: "1", Name: "Abra"}, {ID: "2", Name: "Bulbasaur"}}
	assert.Equal(t, []string{"1", "2"}, IDs(cs))
	assert.Equal(t, []string{"Abra", "Bulbasaur"}, Names(cs))
}
