package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
	"github.com/osse101/PhoenixBot_Go/internal/panel"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
)

func TestToEmbed_EmptyPanel(t *testing.T) {
	assert.Nil(t, toEmbed(panel.Panel{Content: "just text"}))
	assert.Empty(t, toEmbeds(panel.Panel{}))
	assert.NotNil(t, toEmbeds(panel.Panel{}))
}

func TestToEmbed_TruncatesAndStamps(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	embed := toEmbed(panel.Panel{
		Title:     strings.Repeat("x", panel.MaxTitleLength+10),
		Fields:    []panel.Field{{Name: "Items", Value: strings.Repeat("y", panel.MaxFieldValue+1)}},
		Footer:    "Regear abc",
		Timestamp: at,
	})

	require.NotNil(t, embed)
	assert.Len(t, []rune(embed.Title), panel.MaxTitleLength)
	assert.Len(t, []rune(embed.Fields[0].Value), panel.MaxFieldValue)
	assert.Equal(t, "Regear abc", embed.Footer.Text)
	assert.Equal(t, "2024-05-01T12:00:00Z", embed.Timestamp)
}

func TestToComponents(t *testing.T) {
	assert.NotNil(t, toComponents(nil))
	assert.Empty(t, toComponents(nil))

	rows := []panel.Row{
		panel.SelectRow(panel.Control{
			CustomID:  "pick",
			MinValues: 1,
			MaxValues: 1,
			Options:   []panel.Option{{Label: "Guardian Helmet", Value: "Guardian Helmet", Default: true}},
		}),
		panel.ButtonRow(
			panel.Control{CustomID: "ok", Label: "Confirm", Style: panel.StyleSuccess},
			panel.Control{CustomID: "no", Label: "Cancel", Style: panel.StyleDanger, Disabled: true},
		),
	}

	out := toComponents(rows)
	require.Len(t, out, 2)

	selectRow := out[0].(discordgo.ActionsRow)
	menu := selectRow.Components[0].(discordgo.SelectMenu)
	assert.Equal(t, discordgo.StringSelectMenu, menu.MenuType)
	require.NotNil(t, menu.MinValues)
	assert.Equal(t, 1, *menu.MinValues)
	assert.True(t, menu.Options[0].Default)

	buttons := out[1].(discordgo.ActionsRow).Components
	require.Len(t, buttons, 2)
	assert.Equal(t, discordgo.SuccessButton, buttons[0].(discordgo.Button).Style)
	assert.Equal(t, discordgo.DangerButton, buttons[1].(discordgo.Button).Style)
	assert.True(t, buttons[1].(discordgo.Button).Disabled)
}

func TestToComponents_SelectWithoutMinimum(t *testing.T) {
	out := toComponents([]panel.Row{panel.SelectRow(panel.Control{
		CustomID: "pick",
		Options:  []panel.Option{{Label: "a", Value: "a"}},
	})})

	menu := out[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Nil(t, menu.MinValues)
}

func TestPanelFromMessage(t *testing.T) {
	assert.Equal(t, panel.Panel{}, panelFromMessage(nil))
	assert.Equal(t, panel.Panel{Content: "hi"}, panelFromMessage(&discordgo.Message{Content: "hi"}))
}

// The wizard keeps its state in the rendered message, so the selection must
// survive a trip through the discordgo embed.
func TestSelection_SurvivesMessageRoundTrip(t *testing.T) {
	sel := regear.NewSelection(testRecipient)
	sel.Page = 2
	sel.Tier = "T7"
	sel.Items[domain.SlotHead] = regear.Choice{Name: "Guardian Helmet", Tier: "T7"}
	sel.Items[domain.SlotMainHand] = regear.Choice{Name: "Claymore", Tier: "T8"}

	var p panel.Panel
	sel.Encode(&p)

	msg := &discordgo.Message{Embeds: []*discordgo.MessageEmbed{toEmbed(p)}}
	got := regear.Decode(panelFromMessage(msg))

	assert.Equal(t, sel, got)
}

func TestResponseData_Ephemeral(t *testing.T) {
	data := responseData(panel.Panel{Title: "Regear", Ephemeral: true})
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
	assert.Equal(t, userMentionsOnly, data.AllowedMentions)

	data = responseData(panel.Panel{Title: "Regear"})
	assert.Zero(t, data.Flags)
}

func TestMessageEdit_ClearsControls(t *testing.T) {
	edit := messageEdit(channelMessage{channelID: testChannel, messageID: "msg-1"}, panel.Panel{Title: "Done"})

	assert.Equal(t, testChannel, edit.Channel)
	assert.Equal(t, "msg-1", edit.ID)
	require.NotNil(t, edit.Components)
	assert.Empty(t, *edit.Components)
	require.NotNil(t, edit.Embeds)
	assert.Len(t, *edit.Embeds, 1)
}
