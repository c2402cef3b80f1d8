package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"quickaction/internal/domain"
)

func TestRenderPadsIconsAndMarksActive(t *testing.T) {
	items := []domain.ActionItem{
		{Label: "Users", Icons: []string{"fas fa-user"}},
		{Label: "Reports"},
		{Label: "Admin", Icons: []string{"fas fa-lock", "fas fa-cog", "fas fa-star"}},
	}

	rows := Render(items, 1, 2)

	assert.Equal(t, []Row{
		{Icons: []string{"fas fa-user", ""}, Label: "Users"},
		{Icons: []string{"", ""}, Label: "Reports", Active: true},
		{Icons: []string{"fas fa-lock", "fas fa-cog", "fas fa-star"}, Label: "Admin"},
	}, rows)
}

func TestRenderClampsSelection(t *testing.T) {
	items := sampleItems
	assert.True(t, Render(items, 9, 0)[1].Active)
	assert.True(t, Render(items, -3, 0)[0].Active)
	assert.Nil(t, Render(nil, 0, 2))
}

func TestRenderHasExactlyOneActiveRow(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOfN(genItem(), 1, 10).Draw(t, "items")
		selection := rapid.IntRange(-5, 15).Draw(t, "selection")

		active := 0
		for _, row := range Render(items, selection, 2) {
			if row.Active {
				active++
			}
			if len(row.Icons) < 2 {
				t.Fatalf("row %q has %d icons", row.Label, len(row.Icons))
			}
		}
		assert.Equal(t, 1, active)
	})
}

func TestPadIconsDoesNotAlias(t *testing.T) {
	icons := make([]string, 1, 4)
	icons[0] = "a"
	padded := PadIcons(icons, 3)
	padded[0] = "b"
	assert.Equal(t, "a", icons[0])
}
