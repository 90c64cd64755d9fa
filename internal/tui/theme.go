package tui

import "github.com/charmbracelet/lipgloss"

// palette carries every color the view derives its styles from.
type palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Panel      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	Error      lipgloss.Color
	Track      lipgloss.Color
	Knob       lipgloss.Color
	Buttons    [opCount]lipgloss.Color
	ButtonText lipgloss.Color
}

var lightPalette = palette{
	Background: lipgloss.Color("#f3f4f6"),
	Foreground: lipgloss.Color("#000000"),
	Muted:      lipgloss.Color("#6b7280"),
	Panel:      lipgloss.Color("#ffffff"),
	Border:     lipgloss.Color("#d1d5db"),
	Accent:     lipgloss.Color("#3b82f6"),
	Error:      lipgloss.Color("#dc2626"),
	Track:      lipgloss.Color("#d1d5db"),
	Knob:       lipgloss.Color("#ffffff"),
	Buttons: [opCount]lipgloss.Color{
		lipgloss.Color("#3b82f6"),
		lipgloss.Color("#22c55e"),
		lipgloss.Color("#a855f7"),
	},
	ButtonText: lipgloss.Color("#ffffff"),
}

var darkPalette = palette{
	Background: lipgloss.Color("#111827"),
	Foreground: lipgloss.Color("#ffffff"),
	Muted:      lipgloss.Color("#9ca3af"),
	Panel:      lipgloss.Color("#1f2937"),
	Border:     lipgloss.Color("#4b5563"),
	Accent:     lipgloss.Color("#60a5fa"),
	Error:      lipgloss.Color("#f87171"),
	Track:      lipgloss.Color("#1f2937"),
	Knob:       lipgloss.Color("#ffffff"),
	Buttons: [opCount]lipgloss.Color{
		lipgloss.Color("#2563eb"),
		lipgloss.Color("#16a34a"),
		lipgloss.Color("#9333ea"),
	},
	ButtonText: lipgloss.Color("#ffffff"),
}

// theme is derived entirely from the dark flag, so rebuilding it after two
// toggles yields the same styles.
type theme struct {
	dark    bool
	palette palette

	app         lipgloss.Style
	title       lipgloss.Style
	helper      lipgloss.Style
	errorText   lipgloss.Style
	selector    lipgloss.Style
	panel       lipgloss.Style
	panelTitle  lipgloss.Style
	editorFrame lipgloss.Style
	status      lipgloss.Style
	toggleTrack lipgloss.Style
	toggleKnob  lipgloss.Style
	buttons     [opCount]lipgloss.Style
	busyButton  lipgloss.Style
	keyHint     lipgloss.Style
}

func newTheme(dark bool) theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	t := theme{dark: dark, palette: p}
	t.app = lipgloss.NewStyle().Background(p.Background).Foreground(p.Foreground).Padding(0, 2)
	t.title = lipgloss.NewStyle().Bold(true).Foreground(p.Foreground)
	t.helper = lipgloss.NewStyle().Foreground(p.Muted)
	t.errorText = lipgloss.NewStyle().Foreground(p.Error)
	t.selector = lipgloss.NewStyle().
		Background(p.Panel).
		Foreground(p.Foreground).
		Padding(0, 1)
	t.panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Background(p.Panel).
		Foreground(p.Foreground).
		Padding(0, 1)
	t.panelTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Foreground)
	t.editorFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border)
	t.status = lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Panel).Padding(0, 1)
	t.toggleTrack = lipgloss.NewStyle().Background(p.Track).Padding(0, 1)
	t.toggleKnob = lipgloss.NewStyle().Foreground(p.Knob).Bold(true)
	for _, op := range operations {
		t.buttons[op] = lipgloss.NewStyle().
			Bold(true).
			Foreground(p.ButtonText).
			Background(p.Buttons[op]).
			Padding(0, 2)
	}
	t.busyButton = lipgloss.NewStyle().Faint(true).Foreground(p.Muted).Background(p.Panel).Padding(0, 2)
	t.keyHint = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	return t
}

func (t theme) modeLabel() string {
	if t.dark {
		return "Dark Mode"
	}
	return "Light Mode"
}

// toggleView renders the switch: knob on the right when dark.
func (t theme) toggleView() string {
	knob := t.toggleKnob.Render("●")
	track := "  " + knob
	if !t.dark {
		track = knob + "  "
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, t.title.Render(t.modeLabel())+" ", t.toggleTrack.Render(track))
}
