package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "ctally/internal/model"
)

// TUI implements UI using Bubble Tea for interactive browsing of the
// per-directory counts.
type TUI struct {
	output io.Writer
	errOut io.Writer
}

// NewTUI creates a new TUI writing the browser to output and warnings to
// errOut.
func NewTUI(output, errOut io.Writer) *TUI {
	return &TUI{output: output, errOut: errOut}
}

// DisplayCounts opens the interactive browser over the depth-limited
// directory entries. Reports that fit on screen print as plain text
// instead of entering the alt screen.
func (t *TUI) DisplayCounts(root *m.DirCount, depth int) error {
	model := newCountsModel(root, depth)

	// Get initial terminal size
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsBrowser() {
		var b strings.Builder

		renderPlain(&b, root, depth)

		_, err := fmt.Fprint(t.output, b.String())

		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplaySkippedFile reports a skipped single-file scan on stderr.
func (t *TUI) DisplaySkippedFile(path string, reason string) {
	_, _ = fmt.Fprintf(t.errOut, "skipping %s: %s\n", path, reason)
}

// DisplayUnreadableFile warns about an unreadable file on stderr.
func (t *TUI) DisplayUnreadableFile(path string, err error) {
	_, _ = fmt.Fprintf(t.errOut, "warning: could not read %s: %v\n", path, err)
}

// dirItem is one browsable directory entry.
type dirItem struct {
	path  string
	lines int
}

func (d dirItem) FilterValue() string {
	return d.path
}

// Simple delegate for directory list items.
type countsDelegate struct{}

func (d countsDelegate) Height() int  { return 1 }
func (d countsDelegate) Spacing() int { return 0 }
func (d countsDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d countsDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	entry, ok := item.(dirItem)
	if !ok {
		return
	}

	isSelected := index == lm.Index()

	var pathStyle, countStyle lipgloss.Style

	width := lm.Width() - 10 // Subtract count width (8) + spacing (2)

	if isSelected {
		pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true).
			Width(8).
			Align(lipgloss.Right)
	} else {
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(8).
			Align(lipgloss.Right)
	}

	line := fmt.Sprintf("%s  %s",
		countStyle.Render(fmt.Sprintf("%d", entry.lines)),
		pathStyle.Render(truncateToWidth(entry.path, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// countsModel is the Bubble Tea model for browsing directory counts.
type countsModel struct {
	width   int
	height  int
	dirList list.Model
	total   int
	dirs    int
}

func newCountsModel(root *m.DirCount, depth int) countsModel {
	items := make([]list.Item, 0)

	root.Walk(func(node *m.DirCount, level int) {
		if level > depth {
			return
		}

		items = append(items, dirItem{path: node.Rel + "/", lines: node.Lines})
	})

	dirList := list.New(items, countsDelegate{}, 80, 20)
	dirList.SetShowPagination(false)
	dirList.SetShowFilter(true)
	dirList.SetShowHelp(false)
	dirList.SetShowTitle(false)
	dirList.SetShowStatusBar(false)
	dirList.FilterInput.Placeholder = "Filter by path…"

	return countsModel{
		dirList: dirList,
		total:   root.Lines,
		dirs:    len(items),
	}
}

// needsBrowser reports whether the entry list is too long to read as
// plain output on the current screen.
func (cm countsModel) needsBrowser() bool {
	if cm.dirs == 0 || cm.height == 0 {
		return false
	}

	return cm.dirs > cm.height-9
}

func (cm countsModel) Init() tea.Cmd {
	return nil
}

func (cm countsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.width = msg.Width
		cm.height = msg.Height
		cm.dirList.SetWidth(cm.width)

		return cm, nil

	case tea.KeyMsg:
		if cm.dirList.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return cm, tea.Quit
			}
		}

		cm.dirList, cmd = cm.dirList.Update(msg)

		return cm, cmd
	}

	return cm, cmd
}

func (cm countsModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan

	title := titleStyle.Render("ctally — C/C++ code lines")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Total lines: %s   Directories: %s",
		accentStyle.Render(fmt.Sprintf("%d", cm.total)),
		accentStyle.Render(fmt.Sprintf("%d", cm.dirs)),
	))

	table := cm.renderList()

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(cm.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		table,
		footer,
	)
}

func (cm countsModel) renderList() string {
	// Screen height minus title, summary, footer, border and headers.
	listHeight := cm.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := cm.width - 6

	cm.dirList.SetHeight(listHeight)
	cm.dirList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%8s  %s", "Lines", "Directory"))

	container := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return container.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			cm.dirList.View(),
		),
	)
}
