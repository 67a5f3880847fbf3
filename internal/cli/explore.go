package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listGroupStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	listConflictStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// exploreCommand opens an interactive browser over the groups of one
// intersection.
func (c *CLI) exploreCommand() *cobra.Command {
	var cf cacheFlags
	var sf solverFlags

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse compatibility groups interactively",
		Long: `Explore analyzes an intersection file and opens a terminal browser.
Moving the cursor over a lane shows which lanes may run with it and which
lanes conflict with it. Press enter to print the selected group and exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(args[0], sf)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), cf)
			if err != nil {
				return err
			}
			defer runner.Close()

			stop := c.trackStages(cmd.Context(), "Analyzing "+opts.Name)
			res, err := runner.Execute(cmd.Context(), opts)
			stop()
			if err != nil {
				return err
			}
			if len(res.Groups) == 0 {
				printWarning("%s has no routes to explore", res.Name)
				return nil
			}

			p := tea.NewProgram(NewGroupBrowserModel(res), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			if m, ok := final.(GroupBrowserModel); ok && m.Selected != nil {
				printSuccess("Lane %d runs with %s", m.Selected.Lane, joinInts(m.Selected.Members))
			}
			return nil
		},
	}

	cf.register(cmd)
	sf.register(cmd)
	return cmd
}

// =============================================================================
// GroupBrowserModel - Interactive group browsing
// =============================================================================

// GroupSelection holds the lane picked in the browser.
type GroupSelection struct {
	Lane    int
	Members []int
}

// GroupBrowserModel is the bubbletea model for browsing compatibility groups.
type GroupBrowserModel struct {
	Result   *pipeline.Result
	Cursor   int
	Selected *GroupSelection
	Height   int
	Offset   int

	routes    map[int]string
	conflicts map[int][]int
}

// NewGroupBrowserModel creates a browser over the groups of res.
func NewGroupBrowserModel(res *pipeline.Result) GroupBrowserModel {
	conflicts := make(map[int][]int, len(res.Adjacency))
	for _, e := range res.Adjacency {
		conflicts[e.Lane] = e.Conflicts
	}
	return GroupBrowserModel{
		Result:    res,
		Height:    15,
		routes:    routeByEntrance(res),
		conflicts: conflicts,
	}
}

func (m GroupBrowserModel) Init() tea.Cmd {
	return nil
}

func (m GroupBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Result.Groups)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = n - 1
			m.Offset = max(0, n-m.Height)
		case "enter":
			if n == 0 {
				return m, nil
			}
			g := m.Result.Groups[m.Cursor]
			m.Selected = &GroupSelection{Lane: g.Lane, Members: slices.Clone(g.Members)}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m GroupBrowserModel) View() string {
	var b strings.Builder

	title := "Compatibility Groups"
	if m.Result.Name != "" {
		title += " · " + m.Result.Name
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	groups := m.Result.Groups
	end := min(m.Offset+m.Height, len(groups))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		g := groups[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(g.Lane), m.routes[g.Lane], strconv.Itoa(len(g.Members))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Lane", "Route", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(groups) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.inCurrentGroup(groups[idx].Lane):
				return listGroupStyle
			case m.conflictsWithCurrent(groups[idx].Lane):
				return listConflictStyle
			}
			return listDimStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(groups) > 0 {
		b.WriteString(m.detail(groups[m.Cursor].Lane))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(groups))))

	return b.String()
}

// detail describes the lane under the cursor.
func (m GroupBrowserModel) detail(l int) string {
	g, _ := m.Result.Group(l)
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", listDimStyle.Render("group:    "), listGroupStyle.Render(joinInts(g.Members)))
	fmt.Fprintf(&b, "  %s %s\n", listDimStyle.Render("conflicts:"), listConflictStyle.Render(joinInts(m.conflicts[l])))
	if g.Fallback {
		b.WriteString("  " + StyleWarning.Render("no lane can run alongside this one") + "\n")
	}
	return b.String()
}

func (m GroupBrowserModel) current() int {
	if len(m.Result.Groups) == 0 {
		return -1
	}
	return m.Result.Groups[m.Cursor].Lane
}

func (m GroupBrowserModel) inCurrentGroup(l int) bool {
	g, ok := m.Result.Group(m.current())
	return ok && slices.Contains(g.Members, l)
}

func (m GroupBrowserModel) conflictsWithCurrent(l int) bool {
	return slices.Contains(m.conflicts[m.current()], l)
}
