package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
)

func fourWayOptions() pipeline.Options {
	return pipeline.Options{
		Name:  "four-way",
		Lanes: 8,
		Routes: []lane.Route{
			{Entrance: 0, Exit: 5},
			{Entrance: 2, Exit: 7},
			{Entrance: 4, Exit: 1},
			{Entrance: 6, Exit: 3},
		},
	}
}

func analyzed(t *testing.T) *pipeline.Result {
	t.Helper()
	res, err := pipeline.Analyze(context.Background(), fourWayOptions())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return res
}

func press(m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyJ     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	keyQ     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	keyEnd   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}
)

func TestGroupBrowserNavigation(t *testing.T) {
	res := analyzed(t)
	m, _ := press(NewGroupBrowserModel(res), keyDown, keyJ)
	if got := m.(GroupBrowserModel).Cursor; got != 2 {
		t.Errorf("cursor after two moves = %d, want 2", got)
	}

	m, _ = press(m, keyUp, keyUp, keyUp)
	if got := m.(GroupBrowserModel).Cursor; got != 0 {
		t.Errorf("cursor should stop at 0, got %d", got)
	}

	m, _ = press(m, keyEnd, keyDown)
	if got := m.(GroupBrowserModel).Cursor; got != len(res.Groups)-1 {
		t.Errorf("cursor should stop at last row, got %d", got)
	}
}

func TestGroupBrowserSelect(t *testing.T) {
	res := analyzed(t)
	m, cmd := press(NewGroupBrowserModel(res), keyDown, keyEnter)
	if cmd == nil {
		t.Fatal("enter should quit the program")
	}

	sel := m.(GroupBrowserModel).Selected
	if sel == nil {
		t.Fatal("enter should record a selection")
	}
	want := res.Groups[1]
	if sel.Lane != want.Lane || len(sel.Members) != len(want.Members) {
		t.Errorf("selected %+v, want lane %d members %v", sel, want.Lane, want.Members)
	}
}

func TestGroupBrowserQuit(t *testing.T) {
	m, cmd := press(NewGroupBrowserModel(analyzed(t)), keyQ)
	if cmd == nil {
		t.Fatal("q should quit the program")
	}
	if m.(GroupBrowserModel).Selected != nil {
		t.Error("quitting should not select")
	}
}

func TestGroupBrowserWindowResize(t *testing.T) {
	m, _ := NewGroupBrowserModel(analyzed(t)).Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	if got := m.(GroupBrowserModel).Height; got != 5 {
		t.Errorf("height = %d, want minimum 5", got)
	}
}

func TestGroupBrowserView(t *testing.T) {
	view := NewGroupBrowserModel(analyzed(t)).View()
	for _, want := range []string{"Compatibility Groups", "four-way", "group:", "conflicts:", "[1/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
