package tui

type pageLayout struct {
	windowWidth   int
	windowHeight  int
	sideBySide    bool
	editorWidth   int
	editorHeight  int
	resultsWidth  int
	resultsHeight int
	pickerHeight  int
}

func newPageLayout() pageLayout {
	l := pageLayout{}
	l.Update(80, 24)
	return l
}

// Update records the window and splits its width. Wide terminals put the
// editor and the results next to each other, narrow ones stack them.
// Heights are settled by Fit once the fixed parts have been measured.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	inner := l.innerWidth()
	if inner >= sideBySideWidth {
		l.sideBySide = true
		l.editorWidth = (inner - columnGap) / 2
		l.resultsWidth = inner - columnGap - l.editorWidth
		return
	}
	l.sideBySide = false
	l.editorWidth = inner
	l.resultsWidth = inner
}

// Fit hands the rows not taken by chrome to the editor, results and picker.
// chrome is the page height without the body; controls is the left column
// height without the editor text area.
func (l *pageLayout) Fit(chrome, controls int) {
	budget := atLeast(l.windowHeight-chrome, minUsableHeight)
	if l.sideBySide {
		l.editorHeight = atLeast(budget-controls, minPanelHeight)
		l.resultsHeight = budget
	} else {
		panes := budget - controls - stackGap
		l.editorHeight = atLeast(panes/3, minPanelHeight)
		l.resultsHeight = atLeast(panes-l.editorHeight, minPanelHeight)
	}
	l.pickerHeight = atLeast(l.editorHeight+controls-pickerChrome, minPanelHeight)
}

func (l pageLayout) innerWidth() int {
	return atLeast(l.windowWidth-horizontalPadding, minPanelWidth)
}

func atLeast(value, floor int) int {
	if value < floor {
		return floor
	}
	return value
}
