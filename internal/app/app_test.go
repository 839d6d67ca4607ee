package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spellz/internal/router"
	"github.com/abhisek/spellz/internal/screen"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "body of " + s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) HeaderStatus() string                    { return "status of " + s.title }

func TestInit_PushesStartScreen(t *testing.T) {
	m := newAppModel(Options{Home: &stubScreen{title: "home"}, Start: &stubScreen{title: "resume"}})
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected a start command")
	}
	// Batch collapses to the push alone when the root has no Init command.
	var cmds []tea.Cmd
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		cmds = msg
	default:
		cmds = []tea.Cmd{func() tea.Msg { return msg }}
	}
	pushed := false
	for _, c := range cmds {
		if c == nil {
			continue
		}
		if push, ok := c().(router.PushScreenMsg); ok && push.Screen.Title() == "resume" {
			pushed = true
		}
	}
	if !pushed {
		t.Error("start screen was not pushed")
	}
}

func TestUpdate_EscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(Options{Home: &stubScreen{title: "home"}})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}

	m.router.Push(&stubScreen{title: "play"})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestView_Renders(t *testing.T) {
	m := newAppModel(Options{Home: &stubScreen{title: "home"}})
	for _, size := range []tea.WindowSizeMsg{{Width: 80, Height: 24}, {Width: 20, Height: 10}} {
		updated, _ := m.Update(size)
		v := updated.(AppModel).View()
		if !v.AltScreen {
			t.Errorf("%dx%d: expected alt screen", size.Width, size.Height)
		}
	}
}
