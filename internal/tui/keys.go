package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Translate    key.Binding
	Summarize    key.Binding
	SummarizePDF key.Binding
	OpenPicker   key.Binding
	ClosePicker  key.Binding
	SourceLang   key.Binding
	TargetLang   key.Binding
	ToggleTheme  key.Binding
	Cancel       key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Translate:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "translate")),
		Summarize:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "summarize text")),
		SummarizePDF: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "summarize pdf")),
		OpenPicker:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "choose pdf")),
		ClosePicker:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close picker")),
		SourceLang:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "source language")),
		TargetLang:   key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "target language")),
		ToggleTheme:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "dark/light")),
		Cancel:       key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cancel requests")),
		ScrollUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll results")),
		ScrollDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll results")),
		Help:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Translate, k.Summarize, k.SummarizePDF, k.OpenPicker, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Translate, k.Summarize, k.SummarizePDF, k.Cancel},
		{k.SourceLang, k.TargetLang, k.OpenPicker, k.ClosePicker},
		{k.ToggleTheme, k.ScrollUp, k.ScrollDown, k.Help, k.Quit},
	}
}

func (k keyMap) trigger(op operation) key.Binding {
	switch op {
	case opTranslate:
		return k.Translate
	case opSummarizeText:
		return k.Summarize
	default:
		return k.SummarizePDF
	}
}
