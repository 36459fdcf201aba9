package curation

// Book describes one recommended title in transport-friendly form.
// Only Title is guaranteed; every other field may be absent depending on
// which retriever version produced the result. Records are read-only once
// received and carry no cross-request identity.
type Book struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Rank        int      `json:"rank,omitempty"`
	Score       float64  `json:"score,omitempty"`
	ScorePct    int      `json:"score_pct,omitempty"`
	RelPct      int      `json:"rel_pct,omitempty"`
	Stars       float64  `json:"stars,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
	Publisher   *string  `json:"publisher,omitempty"`
	ISBN        *string  `json:"isbn,omitempty"`
}

// BlurbText returns the best available short text for a card in preference
// order. Older index builds populate content instead of description.
func (b Book) BlurbText() string {
	if b.Description != "" {
		return b.Description
	}
	return b.Content
}

// Request is the body of POST /recommend.
type Request struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// Response mirrors the payload returned by /recommend: an ordered result
// list plus an optional LLM-written summary in markdown.
type Response struct {
	Query   string `json:"query"`
	Results []Book `json:"results"`
	Content string `json:"content,omitempty"`
}

// healthzResponse mirrors GET /healthz.
type healthzResponse struct {
	Status string `json:"status"`
}
