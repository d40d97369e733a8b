package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	minWidthForSidebar = 90
	sidebarWidth       = 22
	maxScores          = 100
)

var (
	boardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Mine     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Mine, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns the default bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev board")),
		Mine:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mine/all")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the top results per variant.
type ScoreboardModel struct {
	variants   []t2048.Variant
	gameCursor int
	store      *storage.Store
	player     string
	onlyMine   bool
	scores     []storage.ScoreEntry
	loadErr    error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width       int
	height      int
	showSidebar bool
	quitting    bool
	goingBack   bool
}

// NewScoreboardModel creates a scoreboard. player enables the "mine" filter.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: t2048.Variants(),
		store:    store,
		player:   player,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.keys.Mine.SetEnabled(player != "")
	m.layout()
	m.loadScores()
	return m
}

func (m *ScoreboardModel) layout() {
	m.showSidebar = m.width >= minWidthForSidebar
	m.help.Width = m.width

	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
}

func (m *ScoreboardModel) current() (t2048.Variant, bool) {
	if len(m.variants) == 0 {
		return t2048.Variant{}, false
	}
	return m.variants[m.gameCursor], true
}

func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr = nil, nil
	v, ok := m.current()
	if ok && m.store != nil {
		if m.onlyMine {
			m.scores, m.loadErr = m.store.PlayerScores(m.player, v.ID, maxScores)
		} else {
			m.scores, m.loadErr = m.store.TopScores(v.ID, maxScores)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		tile := strconv.Itoa(s.MaxTile)
		if s.ReachedTarget {
			tile += "*"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			strconv.Itoa(s.Score),
			tile,
			strconv.Itoa(s.Moves),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) shiftGame(delta int) {
	if len(m.variants) == 0 {
		return
	}
	n := len(m.variants)
	m.gameCursor = ((m.gameCursor+delta)%n + n) % n
	m.loadScores()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles keys and resize.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.shiftGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.shiftGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mine):
			m.onlyMine = !m.onlyMine
			m.loadScores()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.loadScores()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if v, ok := m.current(); ok {
		title = fmt.Sprintf("HIGH SCORES - %s", v.Title())
		if m.onlyMine {
			title += " - " + m.player
		}
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", boardBorderStyle.Render(m.renderTable())))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(boardBorderStyle.Render(m.renderTable()))
	}
	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Boards\n")
	sb.WriteString(strings.Repeat("─", sidebarWidth-4))
	sb.WriteString("\n")
	for i, v := range m.variants {
		line := fmt.Sprintf("  %s %dx%d", v.Name, v.Size, v.Size)
		if i == m.gameCursor {
			line = menuSelectedStyle.Render(fmt.Sprintf("> %s %dx%d", v.Name, v.Size, v.Size))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return boardBorderStyle.Width(sidebarWidth).Render(sb.String())
}

func (m ScoreboardModel) renderTabs() string {
	v, ok := m.current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("< %s %dx%d >", v.Name, v.Size, v.Size)
}

func (m ScoreboardModel) renderTable() string {
	switch {
	case m.store == nil:
		return boardEmptyStyle.Render("Scores are unavailable.")
	case m.loadErr != nil:
		return boardEmptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return boardEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the player went back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard and reports whether to go back to the menu.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, player, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
