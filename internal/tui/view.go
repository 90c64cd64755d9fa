package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/polyglot/internal/lang"
)

func (m *model) View() string {
	return m.page(m.bodyView())
}

// page frames body with the header, language row and footer. Sections are
// separated by one blank line.
func (m *model) page(body string) string {
	sections := []string{m.headerView(), m.languageView(), body, m.footerView()}
	return m.theme.app.Render(strings.Join(sections, "\n\n"))
}

func (m *model) bodyView() string {
	left := m.leftView()
	right := m.results.View()
	if m.layout.sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.layout.editorWidth).Render(left),
			strings.Repeat(" ", columnGap),
			right,
		)
	}
	return left + strings.Repeat("\n", stackGap+1) + right
}

func (m *model) leftView() string {
	if m.pickerOpen {
		return m.pickerView()
	}
	return m.theme.editorFrame.Render(m.editor.View()) + "\n" + m.controlsView()
}

// controlsView is everything under the editor: the triggers and the PDF line.
func (m *model) controlsView() string {
	return m.buttonsView(m.layout.editorWidth) + "\n" + m.documentView()
}

func (m *model) headerView() string {
	title := m.theme.title.Render(appTitle)
	toggle := m.theme.toggleView()
	gap := m.layout.innerWidth() - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 2 {
		return lipgloss.JoinVertical(lipgloss.Left, title, toggle)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", gap), toggle)
}

func (m *model) languageView() string {
	from := m.theme.selector.Render(languageLabel("From", m.session.sourceLang))
	to := m.theme.selector.Render(languageLabel("To", m.session.targetLang))
	hint := m.theme.keyHint.Render(fmt.Sprintf("%s / %s to change", m.keys.SourceLang.Help().Key, m.keys.TargetLang.Help().Key))
	row := lipgloss.JoinHorizontal(lipgloss.Top, from, " → ", to, "  ", hint)
	return lipgloss.NewStyle().MaxWidth(m.layout.innerWidth()).Render(row)
}

// languageLabel reads "To: French · français (fr)"; the native name is left
// out when it matches the English one.
func languageLabel(prefix string, code lang.Code) string {
	name := code.Name()
	if native := code.NativeName(); native != "" && native != name {
		name = fmt.Sprintf("%s · %s", name, native)
	}
	return fmt.Sprintf("%s: %s (%s)", prefix, name, code)
}

// buttonsView renders one trigger per operation, wrapping onto another row
// when the next one would not fit in width.
func (m *model) buttonsView(width int) string {
	var rows []string
	row := ""
	for _, op := range operations {
		button := m.buttonView(op)
		switch {
		case row == "":
			row = button
		case lipgloss.Width(row)+buttonGap+lipgloss.Width(button) <= width:
			row += strings.Repeat(" ", buttonGap) + button
		default:
			rows = append(rows, row)
			row = button
		}
	}
	return strings.Join(append(rows, row), "\n")
}

// buttonView shows the loading caption in place of the label while busy.
func (m *model) buttonView(op operation) string {
	hint := m.theme.keyHint.Render(" " + m.keys.trigger(op).Help().Key)
	if m.session.busy[op] {
		return m.theme.busyButton.Render(fmt.Sprintf("%s %s", m.spinner.View(), busyLabel)) + hint
	}
	return m.theme.buttons[op].Render(op.label()) + hint
}

func (m *model) documentView() string {
	label := noFileSelected
	if m.session.document != nil {
		label = m.session.document.Describe()
	}
	line := m.theme.selector.Render(label) + "  " + m.theme.keyHint.Render(m.keys.OpenPicker.Help().Key+" to browse")
	return lipgloss.NewStyle().MaxWidth(m.layout.editorWidth).Render(line)
}

func (m *model) pickerView() string {
	clip := lipgloss.NewStyle().MaxWidth(m.layout.editorWidth)
	header := clip.Render(m.theme.panelTitle.Render(fmt.Sprintf("Select a PDF in %s", m.picker.CurrentDirectory)))
	// The picker ends every entry with a newline, so its output can run one
	// row past its height.
	files := clip.Copy().MaxHeight(m.layout.pickerHeight).Render(m.picker.View())
	hint := m.theme.helper.Render("enter to select, esc to close")
	return strings.Join([]string{header, files, hint}, "\n")
}

func (m *model) footerView() string {
	width := m.layout.innerWidth()
	lines := []string{m.statusView()}
	if m.errorMessage != "" {
		lines = append(lines, m.theme.errorText.Copy().Width(width).Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		lines = append(lines, m.theme.helper.Copy().Width(width).Render(m.infoMessage))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m *model) statusView() string {
	var busy []string
	for _, op := range operations {
		if m.session.busy[op] {
			busy = append(busy, op.String())
		}
	}
	state := "idle"
	if len(busy) > 0 {
		state = "busy: " + strings.Join(busy, ", ")
	}
	stats := []string{
		fmt.Sprintf("%s → %s", m.session.sourceLang, m.session.targetLang),
		fmt.Sprintf("%d in flight", len(m.active)),
		state,
	}
	line := m.theme.status.Render(strings.Join(stats, "  •  "))
	return lipgloss.NewStyle().MaxWidth(m.layout.innerWidth()).Render(line)
}

// refreshResults re-renders the results pane. Empty results are omitted.
func (m *model) refreshResults() {
	width := atLeast(m.layout.resultsWidth-4, 10)
	var panels []string
	for _, op := range operations {
		text := m.session.result(op)
		if text == "" {
			continue
		}
		body := wordwrap.String(text, width)
		align := lipgloss.Left
		if op == opTranslate && m.session.translationLang.RightToLeft() {
			align = lipgloss.Right
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			m.theme.panelTitle.Render(op.resultTitle()),
			lipgloss.NewStyle().Width(width).Align(align).Render(body),
		)
		panels = append(panels, m.theme.panel.Copy().Width(m.layout.resultsWidth-2).Render(content))
	}
	if len(panels) == 0 {
		m.results.SetContent(m.theme.helper.Render("Results will appear here."))
		return
	}
	m.results.SetContent(strings.Join(panels, "\n"))
}
