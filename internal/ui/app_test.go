package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/curiobooks/curio/internal/config"
	"github.com/curiobooks/curio/internal/curation"
	"github.com/curiobooks/curio/internal/session"
)

type stubRecommender struct {
	resp *curation.Response
	err  error
}

func (s *stubRecommender) Recommend(ctx context.Context, req curation.Request) (*curation.Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, curation.ErrBlankQuery
	}
	return s.resp, s.err
}

func (s *stubRecommender) Healthz(ctx context.Context) error { return nil }

func newTestModel(t *testing.T, client curation.Recommender) Model {
	t.Helper()
	m := New(Options{
		Client: client,
		Config: config.Config{
			BaseURL:   "http://localhost:8000",
			ScoreMode: config.ScorePct,
			TopK:      5,
		},
		PrefsPath: t.TempDir() + "/prefs.toml",
	})
	// Tall enough that every card stays inside the viewport.
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 60})
	return updated.(Model)
}

func submitQuery(t *testing.T, m Model, query string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(query)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestSubmit_TransitionsIdleToLoadingSynchronously(t *testing.T) {
	m := newTestModel(t, &stubRecommender{})
	if m.phase.Phase() != session.PhaseIdle {
		t.Fatalf("initial phase = %v, want idle", m.phase.Phase())
	}

	m, cmd := submitQuery(t, m, "시간 여행 소설")
	if m.phase.Phase() != session.PhaseLoading {
		t.Fatalf("phase after submit = %v, want loading", m.phase.Phase())
	}
	if cmd == nil {
		t.Fatalf("submit produced no command")
	}
}

func TestSubmit_BlankQueryLeavesPhaseUnchanged(t *testing.T) {
	m := newTestModel(t, &stubRecommender{})
	for _, q := range []string{"", "   ", "\t"} {
		next, cmd := submitQuery(t, m, q)
		if next.phase.Phase() != session.PhaseIdle {
			t.Fatalf("submit(%q) moved phase to %v", q, next.phase.Phase())
		}
		if cmd != nil {
			t.Fatalf("submit(%q) produced a command", q)
		}
	}
}

func TestScenario_ResultsWithRevealedSummary(t *testing.T) {
	const query = "퇴근 후 마음이 편해지는 에세이"
	const summary = "퇴근 후 읽기 좋은 에세이 세 권을 골랐습니다."

	resp := &curation.Response{
		Query: query,
		Results: []curation.Book{
			{Title: "아무튼, 퇴근", ScorePct: 92},
			{Title: "마음 다림질", ScorePct: 88},
			{Title: "저녁의 해방", ScorePct: 81},
		},
		Content: summary,
	}

	m := newTestModel(t, &stubRecommender{resp: resp})
	m, _ = submitQuery(t, m, query)

	updated, cmd := m.Update(recommendMsg{id: "", resp: resp})
	m = updated.(Model)
	if m.phase.Phase() != session.PhaseResults {
		t.Fatalf("phase = %v, want results", m.phase.Phase())
	}
	if cmd == nil {
		t.Fatalf("no reveal tick scheduled for a non-empty summary")
	}

	// Drive the reveal to completion; it must terminate.
	for i := 0; !m.rev.Done(); i++ {
		updated, _ = m.Update(revealTickMsg{gen: m.revealGen})
		m = updated.(Model)
		if i > m.rev.Len()+1 {
			t.Fatalf("reveal did not terminate")
		}
	}
	if m.rev.Current() != summary {
		t.Fatalf("revealed text = %q, want exact summary", m.rev.Current())
	}

	view := m.View()
	for _, title := range []string{"아무튼, 퇴근", "마음 다림질", "저녁의 해방"} {
		if !strings.Contains(view, title) {
			t.Fatalf("view missing card %q", title)
		}
	}
	if !strings.Contains(view, "92") {
		t.Fatalf("view missing score_pct text in score_pct mode")
	}
}

func TestScenario_EmptyResults(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = submitQuery(t, m, "sf")

	updated, _ := m.Update(recommendMsg{id: "", resp: &curation.Response{Results: []curation.Book{}}})
	m = updated.(Model)
	if m.phase.Phase() != session.PhaseEmpty {
		t.Fatalf("phase = %v, want empty", m.phase.Phase())
	}

	// A summary alone does not turn empty into results.
	m2, _ := submitQuery(t, m, "fantasy")
	updated, _ = m2.Update(recommendMsg{id: "", resp: &curation.Response{Content: "요약만 있음"}})
	m2 = updated.(Model)
	if m2.phase.Phase() != session.PhaseEmpty {
		t.Fatalf("phase with summary but no items = %v, want empty", m2.phase.Phase())
	}
}

func TestScenario_ServerErrorShowsStatusAndBody(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = submitQuery(t, m, "sf")

	apiErr := &curation.APIError{StatusCode: 500, Body: "internal error"}
	updated, _ := m.Update(recommendErrMsg{id: "", err: apiErr})
	m = updated.(Model)

	if m.phase.Phase() != session.PhaseError {
		t.Fatalf("phase = %v, want error", m.phase.Phase())
	}
	view := m.View()
	if !strings.Contains(view, "500") || !strings.Contains(view, "internal error") {
		t.Fatalf("error view missing status and body:\n%s", view)
	}
}

func TestEscResetsToIdle(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = submitQuery(t, m, "sf")
	updated, _ := m.Update(recommendErrMsg{id: "", err: fmt.Errorf("boom")})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.phase.Phase() != session.PhaseIdle {
		t.Fatalf("phase after esc = %v, want idle", m.phase.Phase())
	}
	if m.rev != nil {
		t.Fatalf("reveal survived reset")
	}
}

func TestStaleRevealTickIgnored(t *testing.T) {
	resp := &curation.Response{
		Results: []curation.Book{{Title: "a"}},
		Content: "첫 번째 요약",
	}
	m := newTestModel(t, nil)
	m, _ = submitQuery(t, m, "sf")
	updated, _ := m.Update(recommendMsg{id: "", resp: resp})
	m = updated.(Model)

	staleGen := m.revealGen

	// A new submission supersedes the reveal.
	m, _ = submitQuery(t, m, "fantasy")
	updated, _ = m.Update(recommendMsg{id: "", resp: &curation.Response{
		Results: []curation.Book{{Title: "b"}},
		Content: "두 번째 요약",
	}})
	m = updated.(Model)

	before := m.rev.Current()
	updated, _ = m.Update(revealTickMsg{gen: staleGen})
	m = updated.(Model)
	if m.rev.Current() != before {
		t.Fatalf("stale tick advanced the new reveal: %q -> %q", before, m.rev.Current())
	}
}

func TestThreadMode_SubmitAndResolve(t *testing.T) {
	m := newTestModel(t, nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.viewMode != ViewThread {
		t.Fatalf("tab did not switch to thread view")
	}

	m, cmd := submitQuery(t, m, "눈 오는 날 읽을 책")
	if cmd == nil {
		t.Fatalf("thread submit produced no command")
	}
	msgs := m.thread.Messages()
	if len(msgs) != 2 || !msgs[1].Streaming {
		t.Fatalf("thread after submit = %+v, want user + streaming placeholder", msgs)
	}

	id := msgs[1].ID
	updated, _ = m.Update(recommendMsg{id: id, resp: &curation.Response{
		Results: []curation.Book{{Title: "설국"}},
		Content: "눈의 나라 이야기입니다.",
	}})
	m = updated.(Model)

	msgs = m.thread.Messages()
	if msgs[1].Streaming || msgs[1].Content != "눈의 나라 이야기입니다." {
		t.Fatalf("resolved message = %+v", msgs[1])
	}
	if m.revealFor != id {
		t.Fatalf("reveal not targeting resolved message")
	}
}

func TestThreadMode_ErrorResolvesPlaceholder(t *testing.T) {
	m := newTestModel(t, nil)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	m, _ = submitQuery(t, m, "sf")
	id := m.thread.Messages()[1].ID

	updated, _ = m.Update(recommendErrMsg{id: id, err: &curation.APIError{StatusCode: 500, Body: "internal error"}})
	m = updated.(Model)

	got := m.thread.Messages()[1]
	if got.Streaming || got.Err == "" || got.Content != "" {
		t.Fatalf("failed placeholder = %+v", got)
	}
	view := m.View()
	if !strings.Contains(view, "500") {
		t.Fatalf("thread view missing error status:\n%s", view)
	}
}

func TestRecommendCmd_DeliversTaggedMessages(t *testing.T) {
	resp := &curation.Response{Results: []curation.Book{{Title: "a"}}}
	cmd := recommendCmd(context.Background(), &stubRecommender{resp: resp}, "sf", 5, "msg-1")
	msg := cmd()
	got, ok := msg.(recommendMsg)
	if !ok {
		t.Fatalf("message = %T, want recommendMsg", msg)
	}
	if got.id != "msg-1" || got.resp != resp {
		t.Fatalf("recommendMsg = %+v", got)
	}

	cmd = recommendCmd(context.Background(), &stubRecommender{err: fmt.Errorf("boom")}, "sf", 5, "msg-2")
	msg = cmd()
	gotErr, ok := msg.(recommendErrMsg)
	if !ok {
		t.Fatalf("message = %T, want recommendErrMsg", msg)
	}
	if gotErr.id != "msg-2" || gotErr.err == nil {
		t.Fatalf("recommendErrMsg = %+v", gotErr)
	}
}

func TestCtrlSCyclesScoreMode(t *testing.T) {
	m := newTestModel(t, nil)
	start := m.scoreMode
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)
	if m.scoreMode == start {
		t.Fatalf("ctrl+s did not change score mode")
	}
}
