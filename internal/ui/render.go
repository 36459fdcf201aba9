package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/curiobooks/curio/internal/config"
	"github.com/curiobooks/curio/internal/curation"
)

const (
	blurbMaxRunes = 160
	// Shown when a book has no cover URL; terminals render no images, so
	// the thumbnail slot is a glyph either way.
	coverGlyph       = "📕"
	coverPlaceholder = "▢"

	noScoreLabel = "관련도 정보 없음"
)

// renderCards renders one card per book, preserving response order.
func renderCards(books []curation.Book, mode config.ScoreMode, styles Styles, width int) string {
	if len(books) == 0 {
		return ""
	}
	cardWidth := width - 4
	if cardWidth < 24 {
		cardWidth = 24
	}

	cards := make([]string, 0, len(books))
	for i, book := range books {
		cards = append(cards, renderCard(i+1, book, mode, styles, cardWidth))
	}
	return strings.Join(cards, "\n")
}

func renderCard(position int, book curation.Book, mode config.ScoreMode, styles Styles, width int) string {
	var b strings.Builder

	cover := coverGlyph
	if strings.TrimSpace(book.Thumbnail) == "" {
		cover = coverPlaceholder
	}

	title := fmt.Sprintf("%s %d. %s", cover, position, book.Title)
	b.WriteString(styles.AccentText.Bold(true).Render(title))

	if book.Author != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(book.Author))
		if book.Publisher != nil && *book.Publisher != "" {
			b.WriteString(styles.FaintText.Render(" · " + *book.Publisher))
		}
	}

	if blurb := truncateRunes(book.BlurbText(), blurbMaxRunes); blurb != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(blurb))
	}

	if line := scoreLine(book, mode); line != "" {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(line))
	}

	return styles.Card.Width(width).Render(b.String())
}

// scoreLine maps the configured score mode to its one field, with a single
// fallback when that field is absent. ScoreNone renders nothing at all.
func scoreLine(book curation.Book, mode config.ScoreMode) string {
	switch mode {
	case config.ScoreNone:
		return ""
	case config.ScorePct:
		if book.ScorePct > 0 {
			return fmt.Sprintf("일치도 %d%%", book.ScorePct)
		}
	case config.ScoreRelPct:
		if book.RelPct > 0 {
			return fmt.Sprintf("상대 일치도 %d%%", book.RelPct)
		}
	case config.ScoreStars:
		if book.Stars > 0 {
			return starBar(book.Stars)
		}
	}
	return noScoreLabel
}

// starBar renders a 5-slot star rating, rounding half-stars up.
func starBar(stars float64) string {
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}
	full := int(stars + 0.5)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

// newMarkdownRenderer builds a glamour renderer sized to the view. A nil
// renderer means callers fall back to plain text.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderSummary renders the fully revealed summary as markdown; while the
// reveal is still running the raw prefix is shown instead.
func renderSummary(md *glamour.TermRenderer, text string, done bool, styles Styles) string {
	if !done {
		return styles.Text.Render(text + "▌")
	}
	if md != nil {
		if out, err := md.Render(text); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return styles.Text.Render(text)
}

func truncateRunes(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "…"
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, sep)
}
