package discord

import (
	"bytes"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PhoenixBot_Go/internal/panel"
)

// toEmbed converts the embed part of p, nil when p has no embed content
func toEmbed(p panel.Panel) *discordgo.MessageEmbed {
	if p.Title == "" && p.Description == "" && len(p.Fields) == 0 {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       panel.Truncate(p.Title, panel.MaxTitleLength),
		Description: panel.Truncate(p.Description, panel.MaxDescLength),
		Color:       p.Color,
	}
	for _, f := range p.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   panel.Truncate(f.Name, panel.MaxFieldName),
			Value:  panel.Truncate(f.Value, panel.MaxFieldValue),
			Inline: f.Inline,
		})
	}
	if p.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: p.Footer}
	}
	if !p.Timestamp.IsZero() {
		embed.Timestamp = p.Timestamp.UTC().Format(time.RFC3339)
	}
	return embed
}

func toEmbeds(p panel.Panel) []*discordgo.MessageEmbed {
	if embed := toEmbed(p); embed != nil {
		return []*discordgo.MessageEmbed{embed}
	}
	return []*discordgo.MessageEmbed{}
}

// toComponents converts panel rows to action rows. The result is never nil so
// that an empty panel clears the controls of the message it replaces.
func toComponents(rows []panel.Row) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		ar := discordgo.ActionsRow{}
		for _, c := range row.Controls {
			ar.Components = append(ar.Components, toComponent(c))
		}
		out = append(out, ar)
	}
	return out
}

func toComponent(c panel.Control) discordgo.MessageComponent {
	if c.Kind == panel.ControlSelect {
		menu := discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    c.CustomID,
			Placeholder: panel.Truncate(c.Placeholder, panel.MaxPlaceholder),
			Disabled:    c.Disabled,
			MaxValues:   c.MaxValues,
		}
		if c.MinValues > 0 {
			minValues := c.MinValues
			menu.MinValues = &minValues
		}
		for _, o := range c.Options {
			menu.Options = append(menu.Options, discordgo.SelectMenuOption{
				Label:       panel.Truncate(o.Label, panel.MaxLabelLength),
				Value:       o.Value,
				Description: panel.Truncate(o.Description, panel.MaxLabelLength),
				Default:     o.Default,
			})
		}
		return menu
	}

	return discordgo.Button{
		CustomID: c.CustomID,
		Label:    panel.Truncate(c.Label, panel.MaxLabelLength),
		Style:    buttonStyle(c.Style),
		Disabled: c.Disabled,
	}
}

func buttonStyle(s panel.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case panel.StyleSuccess:
		return discordgo.SuccessButton
	case panel.StyleDanger:
		return discordgo.DangerButton
	case panel.StyleSecondary:
		return discordgo.SecondaryButton
	default:
		return discordgo.PrimaryButton
	}
}

// panelFromMessage reads the document part of a rendered message back into a
// panel. Controls are not recovered.
func panelFromMessage(m *discordgo.Message) panel.Panel {
	if m == nil {
		return panel.Panel{}
	}

	p := panel.Panel{Content: m.Content}
	if len(m.Embeds) == 0 || m.Embeds[0] == nil {
		return p
	}

	embed := m.Embeds[0]
	p.Title = embed.Title
	p.Description = embed.Description
	p.Color = embed.Color
	for _, f := range embed.Fields {
		if f == nil {
			continue
		}
		p.Fields = append(p.Fields, panel.Field{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	if embed.Footer != nil {
		p.Footer = embed.Footer.Text
	}
	return p
}

func toFiles(a *panel.Attachment) []*discordgo.File {
	if a == nil {
		return nil
	}
	return []*discordgo.File{{
		Name:        a.Name,
		ContentType: a.ContentType,
		Reader:      bytes.NewReader(a.Data),
	}}
}

var userMentionsOnly = &discordgo.MessageAllowedMentions{
	Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
}

func messageSend(p panel.Panel, attachment *panel.Attachment) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:         p.Content,
		Embeds:          toEmbeds(p),
		Components:      toComponents(p.Rows),
		Files:           toFiles(attachment),
		AllowedMentions: userMentionsOnly,
	}
}

func messageEdit(ref channelMessage, p panel.Panel) *discordgo.MessageEdit {
	content := p.Content
	embeds := toEmbeds(p)
	components := toComponents(p.Rows)
	return &discordgo.MessageEdit{
		ID:              ref.messageID,
		Channel:         ref.channelID,
		Content:         &content,
		Embeds:          &embeds,
		Components:      &components,
		AllowedMentions: userMentionsOnly,
	}
}

type channelMessage struct {
	channelID string
	messageID string
}

// responseData converts p to an interaction response body
func responseData(p panel.Panel) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:         p.Content,
		Embeds:          toEmbeds(p),
		Components:      toComponents(p.Rows),
		AllowedMentions: userMentionsOnly,
	}
	if p.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}
