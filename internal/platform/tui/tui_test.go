package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

type fakeController struct {
	jumps, lefts, rights, restarts int
}

func (f *fakeController) Jump()                     { f.jumps++ }
func (f *fakeController) MoveLeft()                 { f.lefts++ }
func (f *fakeController) MoveRight()                { f.rights++ }
func (f *fakeController) Restart()                  { f.restarts++ }
func (f *fakeController) Snapshot() flappy.Snapshot { return flappy.Snapshot{} }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runeKey('w'), core.ActionJump},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft},
		{"a", runeKey('a'), core.ActionMoveLeft},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight},
		{"d", runeKey('d'), core.ActionMoveRight},
		{"r", runeKey('r'), core.ActionRestart},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, want %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestSnapshotChannelKeepsLatest(t *testing.T) {
	c := NewSnapshotChannel()

	for seq := uint64(1); seq <= 3; seq++ {
		c.Publish(flappy.Snapshot{Seq: seq})
	}

	msg := waitForSnapshot(c)()
	snap, ok := msg.(SnapshotMsg)
	if !ok {
		t.Fatalf("Expected SnapshotMsg, got %T", msg)
	}
	if snap.Seq != 3 {
		t.Errorf("Expected latest snapshot 3, got %d", snap.Seq)
	}

	c.Close()
	c.Close()
	if msg := waitForSnapshot(c)(); msg != nil {
		t.Errorf("Expected nil message after Close, got %v", msg)
	}
	// Publishing after close must not block
	c.Publish(flappy.Snapshot{Seq: 4})
	c.Publish(flappy.Snapshot{Seq: 5})
}

func TestModelForwardsKeys(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, NewSnapshotChannel(), nil, "classic", core.RuntimeConfig{ScreenW: 40, ScreenH: 20})

	var model tea.Model = m
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeySpace},
		{Type: tea.KeyLeft},
		{Type: tea.KeyRight},
		{Type: tea.KeyRight},
		runeKey('r'),
	} {
		model, _ = model.Update(msg)
	}

	if ctrl.jumps != 1 || ctrl.lefts != 1 || ctrl.rights != 2 || ctrl.restarts != 1 {
		t.Errorf("Unexpected intents: %+v", ctrl)
	}

	model, _ = model.Update(runeKey('?'))
	if !model.(Model).help.ShowAll {
		t.Error("Expected ? to toggle full help")
	}

	model, cmd := model.Update(runeKey('q'))
	if cmd == nil || !model.(Model).quitting {
		t.Error("Expected q to quit")
	}
	if model.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestModelDropsStaleSnapshots(t *testing.T) {
	m := NewModel(&fakeController{}, NewSnapshotChannel(), nil, "classic", core.RuntimeConfig{ScreenW: 40, ScreenH: 20})

	var model tea.Model = m
	model, cmd := model.Update(SnapshotMsg{Seq: 5, Score: 2})
	if cmd == nil {
		t.Error("Expected the model to keep listening for snapshots")
	}
	model, _ = model.Update(SnapshotMsg{Seq: 3, Score: 1})

	if got := model.(Model).snap; got.Seq != 5 || got.Score != 2 {
		t.Errorf("Stale snapshot replaced newer one: %+v", got)
	}
}

func TestModelLoadsTopRunsOnGameOver(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{4, 9, 1} {
		store.SaveRun(flappy.RunResult{Variant: "classic", Score: score})
	}
	store.SaveRun(flappy.RunResult{Variant: "wide", Score: 50})

	m := NewModel(&fakeController{}, NewSnapshotChannel(), store, "classic", core.RuntimeConfig{ScreenW: 60, ScreenH: 30})

	var model tea.Model = m
	model, _ = model.Update(SnapshotMsg{Seq: 1, State: flappy.StateRunning})
	model, _ = model.Update(SnapshotMsg{Seq: 2, State: flappy.StateGameOver, Score: 1, BestScore: 9, WorldWidth: 400, WorldHeight: 500})

	top := model.(Model).top
	if len(top) != 3 || top[0].Score != 9 {
		t.Fatalf("Expected classic runs led by 9, got %+v", top)
	}
	if view := model.View(); !strings.Contains(view, "GAME OVER") {
		t.Error("Expected the game over panel in the view")
	}

	model, _ = model.Update(SnapshotMsg{Seq: 3, State: flappy.StateRunning})
	if model.(Model).top != nil {
		t.Error("Expected top runs to be cleared on restart")
	}
}

func TestDrawSnapshot(t *testing.T) {
	s := core.NewScreen(40, 22) // Playfield rows 2..21, 0.1 cols and 0.04 rows per unit
	snap := flappy.Snapshot{
		State:       flappy.StateRunning,
		PlayerX:     80,
		PlayerY:     250,
		PlayerSize:  42,
		Score:       3,
		BestScore:   7,
		WorldWidth:  400,
		WorldHeight: 500,
		Obstacles:   []flappy.ObstacleView{{X: 200, Width: 60, GapTop: 160, GapHeight: 150}},
	}

	DrawSnapshot(s, snap)

	if !strings.Contains(s.Row(0), "Score: 3") || !strings.Contains(s.Row(0), "Best: 7") {
		t.Errorf("HUD row = %q", s.Row(0))
	}
	if s.Get(0, 1) != hudRule {
		t.Errorf("Expected HUD rule on row 1")
	}

	cells := []struct {
		x, y int
		want rune
	}{
		{8, 12, playerRune},
		{11, 12, playerRune},
		{12, 12, ' '},
		{20, 2, obstacleRune},
		{25, 7, obstacleRune},
		{26, 7, ' '},
		{20, 8, ' '},
		{20, 13, ' '},
		{20, 14, obstacleRune},
		{20, 21, obstacleRune},
	}
	for _, c := range cells {
		if got := s.Get(c.x, c.y); got != c.want {
			t.Errorf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}

	if s.GetCell(8, 12).Color != core.ColorBrightYellow {
		t.Error("Expected running player to be yellow")
	}
}

func TestDrawSnapshotIdleAndTinyScreen(t *testing.T) {
	s := core.NewScreen(40, 22)
	DrawSnapshot(s, flappy.Snapshot{State: flappy.StateIdle, WorldWidth: 400, WorldHeight: 500, PlayerSize: 42})
	if !strings.Contains(s.String(), "Press SPACE to flap") {
		t.Error("Expected idle prompt")
	}

	// No playfield rows: only the HUD is drawn
	tiny := core.NewScreen(20, 2)
	DrawSnapshot(tiny, flappy.Snapshot{State: flappy.StateRunning, WorldWidth: 400, WorldHeight: 500})
	if !strings.Contains(tiny.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", tiny.Row(0))
	}
}

func TestDrawGameOver(t *testing.T) {
	s := core.NewScreen(60, 30)
	snap := flappy.Snapshot{State: flappy.StateGameOver, Reason: flappy.ReasonCollision, Score: 2, BestScore: 5}
	top := []storage.RunEntry{{Score: 5, Ticks: 900}, {Score: 2, Ticks: 400}}

	DrawGameOver(s, snap, top)

	out := s.String()
	for _, want := range []string{"GAME OVER", "Hit an obstacle", "Score 2   Best 5", "Top runs", "#1     5     900 ticks", "R to restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in game over panel:\n%s", want, out)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorGreen)
	s.DrawText(2, 0, "c")
	s.DrawTextColored(0, 1, "zz", core.ColorGray)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "c") || !strings.Contains(out, "zz") {
		t.Errorf("Rendered output lost text: %q", out)
	}
}

func TestMenu(t *testing.T) {
	store := openStore(t)
	store.SaveRun(flappy.RunResult{Variant: "classic", Score: 7})

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(m.items) != 3 {
		t.Fatalf("Expected 3 variants, got %d", len(m.items))
	}
	if m.items[0].VariantID != "classic" || m.items[0].Best != 7 {
		t.Errorf("Unexpected first item: %+v", m.items[0])
	}
	if !strings.Contains(m.View(), "(best 7)") {
		t.Error("Expected best score in the menu")
	}
	if !strings.Contains(m.View(), "gap 150") {
		t.Error("Expected the selected variant's summary")
	}

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown}) // Stays on the last item
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("Expected selection to exit the menu")
	}

	result := model.(MenuModel).Result()
	if result.VariantID != "wide" || result.Quit || result.WantsHistory {
		t.Errorf("Unexpected result: %+v", result)
	}

	history, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !history.(MenuModel).Result().WantsHistory {
		t.Error("Expected tab to open the history")
	}

	quit, _ := m.Update(runeKey('q'))
	if !quit.(MenuModel).Result().Quit {
		t.Error("Expected q to quit")
	}
}

func TestHistory(t *testing.T) {
	store := openStore(t)
	store.SaveRun(flappy.RunResult{Variant: "classic", Score: 3, Reason: flappy.ReasonOutOfBounds})
	store.SaveRun(flappy.RunResult{Variant: "classic", Score: 8, Reason: flappy.ReasonCollision})
	store.SaveRun(flappy.RunResult{Variant: "drift", Score: 1, Reason: flappy.ReasonCollision})

	m := NewHistoryModel(store, 100, 40)
	if len(m.runs) != 2 || m.runs[0].Score != 8 {
		t.Fatalf("Expected classic runs led by 8, got %+v", m.runs)
	}
	if m.stats.Runs != 2 || m.stats.Best != 8 {
		t.Errorf("Unexpected stats: %+v", m.stats)
	}
	if view := m.View(); !strings.Contains(view, "RUN HISTORY - Classic") || !strings.Contains(view, "2 runs") {
		t.Errorf("Unexpected view:\n%s", view)
	}

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	h := model.(HistoryModel)
	if h.variants[h.cursor].ID != "drift" || len(h.runs) != 1 {
		t.Errorf("Expected drift runs after tab, got %+v", h.runs)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	h = model.(HistoryModel)
	if h.variants[h.cursor].ID != "wide" || len(h.runs) != 0 {
		t.Errorf("Expected empty wide history, got %+v", h.runs)
	}
	if !strings.Contains(h.View(), "No runs yet") {
		t.Error("Expected empty message")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(HistoryModel).IsGoingBack() {
		t.Error("Expected esc to go back")
	}
}

func TestHistoryRecentAndClear(t *testing.T) {
	store := openStore(t)
	store.SaveRun(flappy.RunResult{Variant: "classic", Score: 5, Reason: flappy.ReasonCollision})
	store.SaveRun(flappy.RunResult{Variant: "drift", Score: 2, Reason: flappy.ReasonCollision})

	var model tea.Model = NewHistoryModel(store, 100, 40)
	model, _ = model.Update(runeKey('r'))
	h := model.(HistoryModel)
	if len(h.runs) != 2 || h.runs[0].Variant != "drift" {
		t.Fatalf("Expected recent runs newest first, got %+v", h.runs)
	}
	if h.stats.Runs != 2 || !strings.Contains(h.View(), "RECENT RUNS") {
		t.Errorf("Unexpected recent view: %+v", h.stats)
	}

	// Clearing is scoped to one variant and ignored in recent mode.
	model, _ = model.Update(runeKey('x'))
	if runs, _ := store.TopRuns("", 10); len(runs) != 2 {
		t.Errorf("Expected no runs cleared in recent mode, got %d", len(runs))
	}

	model, _ = model.Update(runeKey('r'))
	model, _ = model.Update(runeKey('x'))
	h = model.(HistoryModel)
	if len(h.runs) != 0 {
		t.Errorf("Expected classic history cleared, got %+v", h.runs)
	}
	if runs, _ := store.TopRuns("drift", 10); len(runs) != 1 {
		t.Error("Clearing classic should keep drift runs")
	}
}

func TestReasonText(t *testing.T) {
	if reasonText(flappy.ReasonOutOfBounds) == "" || reasonText(flappy.ReasonCollision) == "" {
		t.Error("Expected messages for both end reasons")
	}
	if reasonLabel(flappy.ReasonOutOfBounds) != "out of bounds" || reasonLabel(flappy.ReasonNone) != "-" {
		t.Error("Unexpected history labels")
	}
}

func TestSaveScreenshotUsesHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m := NewModel(&fakeController{}, NewSnapshotChannel(), nil, "classic", core.RuntimeConfig{ScreenW: 40, ScreenH: 20})
	path, err := m.saveScreenshot()
	if err != nil {
		t.Fatalf("saveScreenshot() failed: %v", err)
	}

	if dir := filepath.Join(home, ".flappy", "screenshots"); filepath.Dir(path) != dir {
		t.Errorf("screenshot saved to %s, expected it under %s", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "Score: 0") {
		t.Errorf("screenshot lacks the HUD:\n%s", data)
	}

	// The key binding saves without interrupting the game.
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Error("screenshot key should not return a command")
	}
}
