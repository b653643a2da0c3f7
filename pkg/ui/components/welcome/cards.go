package welcome

import (
	"strings"

	"chatshell/pkg/ui/components/utils"
	"chatshell/pkg/ui/styles"

	"charm.land/lipgloss/v2"
)

// Card is a suggestion tile shown under the banner.
type Card struct {
	Heading     string
	Description string
}

var cards = []Card{
	{Heading: "Customer Loyalty Program", Description: "Earn points for every purchase"},
	{Heading: "Marketing Strategies for Sunglasses (Gen Z)", Description: "Collaborate with influencers,"},
	{Heading: "Madagascar Wildlife Exploration on a Budget", Description: "Visit national parks, opt for budget tours."},
	{Heading: "Explaining Superconductors", Description: "Materials that conduct electricity loss of energy."},
}

// Cards returns the suggestion tiles in display order.
func Cards() []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// CardsView lays the suggestion tiles out two per row.
func (b *Banner) CardsView(width int) string {
	if !b.Visible() {
		return ""
	}
	out := RenderCards(width)
	if b.Fading() {
		return fadeBlock(out)
	}
	return out
}

// RenderCards renders the tiles in a two-column grid that fits width.
func RenderCards(width int) string {
	// Border and padding take four columns per card.
	colWidth := (width-1)/2 - 4
	if colWidth < 12 {
		colWidth = width - 4
	}
	if colWidth < 4 {
		return ""
	}

	tiles := make([]string, 0, len(cards))
	for _, c := range cards {
		heading := utils.PadStyled(styles.TextBoldStyle.Render(utils.TruncateToWidth(c.Heading, colWidth)), colWidth)
		desc := utils.PadStyled(styles.TextMutedStyle.Render(utils.TruncateToWidth(c.Description, colWidth)), colWidth)
		tiles = append(tiles, styles.CardStyle.Render(heading+"\n"+desc))
	}

	if colWidth == width-4 {
		return strings.Join(tiles, "\n")
	}

	var rows []string
	for i := 0; i < len(tiles); i += 2 {
		if i+1 < len(tiles) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles[i], " ", tiles[i+1]))
		} else {
			rows = append(rows, tiles[i])
		}
	}
	return strings.Join(rows, "\n")
}
