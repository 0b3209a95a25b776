// Package panel describes re-renderable message documents: an embed-like body
// plus rows of interactive controls. Panels are platform neutral; the discord
// package converts them to and from discordgo messages.
package panel

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Platform-imposed limits
const (
	MaxRows           = 5
	MaxButtonsPerRow  = 5
	MaxSelectOptions  = 25
	MaxLabelLength    = 100
	MaxValueLength    = 100
	MaxCustomIDLength = 100
	MaxTitleLength    = 256
	MaxDescLength     = 4096
	MaxFieldName      = 256
	MaxFieldValue     = 1024
	MaxFields         = 25
	MaxPlaceholder    = 150
)

// Colors used across panels
const (
	ColorInfo    = 0x0099FF
	ColorSuccess = 0x2ECC71
	ColorWarning = 0xFFAA00
	ColorDanger  = 0xFF0000
	ColorNeutral = 0x95A5A6
)

// ControlKind distinguishes buttons from select menus
type ControlKind int

const (
	ControlButton ControlKind = iota
	ControlSelect
)

// ButtonStyle mirrors the platform's button palette
type ButtonStyle int

const (
	StylePrimary ButtonStyle = iota + 1
	StyleSecondary
	StyleSuccess
	StyleDanger
)

// Option is one entry of a select control
type Option struct {
	Label       string
	Value       string
	Description string
	Default     bool
}

// Control is a button or a select menu
type Control struct {
	Kind        ControlKind
	CustomID    string
	Label       string
	Style       ButtonStyle
	Disabled    bool
	Placeholder string
	Options     []Option
	MinValues   int
	MaxValues   int
}

// Row is one line of controls. A select occupies a whole row.
type Row struct {
	Controls []Control
}

// Field is a labeled block of text
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Attachment is a file sent alongside a panel
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Panel is a structured, re-renderable document
type Panel struct {
	Content     string
	Title       string
	Description string
	Color       int
	Fields      []Field
	Footer      string
	Timestamp   time.Time
	Rows        []Row
	Ephemeral   bool
}

// Field returns the first field named name
func (p Panel) Field(name string) (Field, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Control returns the control with customID
func (p Panel) Control(customID string) (Control, bool) {
	for _, row := range p.Rows {
		for _, c := range row.Controls {
			if c.CustomID == customID {
				return c, true
			}
		}
	}
	return Control{}, false
}

// Validate checks the panel against the platform limits
func (p Panel) Validate() error {
	if len(p.Rows) > MaxRows {
		return fmt.Errorf("panel has %d rows, limit is %d", len(p.Rows), MaxRows)
	}
	if len(p.Fields) > MaxFields {
		return fmt.Errorf("panel has %d fields, limit is %d", len(p.Fields), MaxFields)
	}
	for i, row := range p.Rows {
		if len(row.Controls) == 0 {
			return fmt.Errorf("row %d is empty", i)
		}
		selects := 0
		for _, c := range row.Controls {
			if len(c.CustomID) > MaxCustomIDLength {
				return fmt.Errorf("custom id %q exceeds %d characters", c.CustomID, MaxCustomIDLength)
			}
			if c.Kind == ControlSelect {
				selects++
				if len(c.Options) == 0 || len(c.Options) > MaxSelectOptions {
					return fmt.Errorf("select %q has %d options, allowed 1-%d", c.CustomID, len(c.Options), MaxSelectOptions)
				}
			}
		}
		if selects > 0 && len(row.Controls) > 1 {
			return fmt.Errorf("row %d mixes a select with other controls", i)
		}
		if len(row.Controls) > MaxButtonsPerRow {
			return fmt.Errorf("row %d has %d controls, limit is %d", i, len(row.Controls), MaxButtonsPerRow)
		}
	}
	return nil
}

// Truncate shortens s to at most max runes, ending with an ellipsis when cut
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// LimitOptions keeps at most max options and reports how many were dropped
func LimitOptions(opts []Option, max int) ([]Option, int) {
	if len(opts) <= max {
		return opts, 0
	}
	return opts[:max], len(opts) - max
}

// Lines joins non-empty lines and truncates the result to a field value
func Lines(lines []string, max int) string {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return Truncate(strings.Join(kept, "\n"), max)
}

// ButtonRow builds a row of buttons, dropping any beyond the per-row limit
func ButtonRow(buttons ...Control) Row {
	if len(buttons) > MaxButtonsPerRow {
		buttons = buttons[:MaxButtonsPerRow]
	}
	for i := range buttons {
		buttons[i].Kind = ControlButton
	}
	return Row{Controls: buttons}
}

// SelectRow builds a row holding a single select menu
func SelectRow(sel Control) Row {
	sel.Kind = ControlSelect
	return Row{Controls: []Control{sel}}
}
