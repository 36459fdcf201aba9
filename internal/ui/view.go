package ui

import (
	"fmt"
	"strings"

	"github.com/curiobooks/curio/internal/config"
	"github.com/curiobooks/curio/internal/session"
)

func (m Model) renderHeader() string {
	parts := []string{
		m.styles.Logo.Render("curio"),
		m.styles.FaintText.Render(m.cfg.BaseURL),
		m.renderPhaseBadge(),
		m.styles.MutedText.Render("mode: " + m.viewLabel()),
		m.styles.MutedText.Render("score: " + scoreModeLabel(m.scoreMode)),
	}
	return m.styles.Header.Width(m.width).Render(joinNonEmpty(parts, "  "))
}

func (m Model) renderPhaseBadge() string {
	if m.viewMode == ViewThread {
		if m.thread.Pending() > 0 {
			return m.styles.WarningText.Render(m.spin.View() + "응답 대기 중")
		}
		return ""
	}
	switch m.phase.Phase() {
	case session.PhaseLoading:
		return m.styles.WarningText.Render(m.spin.View() + "검색 중")
	case session.PhaseResults:
		return m.styles.SuccessText.Render("● 결과")
	case session.PhaseEmpty:
		return m.styles.MutedText.Render("● 결과 없음")
	case session.PhaseError:
		return m.styles.DangerText.Render("● 오류")
	}
	return ""
}

func (m Model) viewLabel() string {
	if m.viewMode == ViewThread {
		return "대화"
	}
	return "검색"
}

func scoreModeLabel(mode config.ScoreMode) string {
	switch mode {
	case config.ScorePct:
		return "일치도 %"
	case config.ScoreRelPct:
		return "상대 %"
	case config.ScoreNone:
		return "숨김"
	default:
		return "별점"
	}
}

func (m Model) renderInput() string {
	return "  " + m.input.View()
}

func (m Model) renderFooter() string {
	hints := []string{
		"enter 검색",
		"esc 초기화",
		"tab 보기 전환",
		"ctrl+s 점수 표시",
		"ctrl+t 테마",
		"pgup/pgdn 스크롤",
		"ctrl+c 종료",
	}
	return m.styles.Footer.Width(m.width).Render(strings.Join(hints, "  ·  "))
}

// refreshContent re-renders the scrollable body into the viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	var body string
	if m.viewMode == ViewThread {
		body = m.renderThread()
	} else {
		body = m.renderSingle()
	}
	m.content.SetContent(body)
}

// renderSingle shows exactly one of the five phase views.
func (m Model) renderSingle() string {
	switch m.phase.Phase() {
	case session.PhaseIdle:
		return m.styles.FaintText.Render("\n  읽고 싶은 책의 분위기를 문장으로 알려주세요.")

	case session.PhaseLoading:
		return fmt.Sprintf("\n  %s추천 도서를 찾고 있어요…", m.spin.View())

	case session.PhaseError:
		msg := "요청에 실패했습니다."
		if err := m.phase.Err(); err != nil {
			msg = err.Error()
		}
		return "\n" + m.styles.ErrorBox.Width(m.width-4).Render(msg+"\n\nesc 키로 다시 시도할 수 있어요.")

	case session.PhaseEmpty:
		return m.styles.MutedText.Render("\n  조건에 맞는 도서를 찾지 못했어요. 다른 문장으로 검색해 보세요.")

	case session.PhaseResults:
		return m.renderResults()
	}
	return ""
}

func (m Model) renderResults() string {
	resp := m.phase.Response()
	if resp == nil {
		return ""
	}

	var b strings.Builder
	if m.rev != nil && m.revealFor == "" {
		b.WriteString(renderSummary(m.markdown, m.rev.Current(), m.rev.Done(), m.styles))
		b.WriteString("\n\n")
	}
	b.WriteString(renderCards(resp.Results, m.scoreMode, m.styles, m.width))
	return b.String()
}

// renderThread shows the conversation: user lines, assistant summaries with
// attached cards, spinners for pending placeholders, inline errors.
func (m Model) renderThread() string {
	msgs := m.thread.Messages()
	if len(msgs) == 0 {
		return m.styles.FaintText.Render("\n  대화를 시작해 보세요. 질문할 때마다 새 추천을 받아요.")
	}

	var b strings.Builder
	for _, msg := range msgs {
		switch msg.Role {
		case session.RoleUser:
			b.WriteString(m.styles.AccentText.Bold(true).Render("나 "))
			b.WriteString(m.styles.Text.Render(msg.Content))
			b.WriteString("\n")

		case session.RoleAssistant:
			b.WriteString(m.styles.SuccessText.Render("큐리오 "))
			switch {
			case msg.Streaming:
				b.WriteString(m.spin.View())
				b.WriteString(m.styles.MutedText.Render("생각 중…"))
			case msg.Err != "":
				b.WriteString(m.styles.DangerText.Render(msg.Err))
			case m.rev != nil && m.revealFor == msg.ID:
				b.WriteString("\n")
				b.WriteString(renderSummary(m.markdown, m.rev.Current(), m.rev.Done(), m.styles))
			default:
				b.WriteString("\n")
				b.WriteString(renderSummary(m.markdown, msg.Content, true, m.styles))
			}
			if len(msg.Books) > 0 && !msg.Streaming {
				b.WriteString("\n")
				b.WriteString(renderCards(msg.Books, m.scoreMode, m.styles, m.width))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
