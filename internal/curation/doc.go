// Package curation provides the HTTP client for the book curation backend.
//
// # Overview
//
// The backend exposes one endpoint curio cares about: POST /recommend takes
// a natural-language query plus a result-count hint and returns an ordered
// list of books with an optional LLM-written summary. GET /healthz exists
// for a startup probe. The client is a pure request/response mapping with
// no local state.
//
// # Request/Response Shapes
//
// Request body:
//
//	{"query": "퇴근 후 마음이 편해지는 에세이", "top_k": 5}
//
// Response body:
//
//	{
//	  "query": "...",
//	  "results": [{"title": "...", "author": "...", "score_pct": 92, ...}],
//	  "content": "optional markdown summary"
//	}
//
// Only a book's title is required; every score field may be absent
// depending on which retriever version the backend runs.
//
// # Error Handling
//
// Blank queries are rejected locally with ErrBlankQuery before any network
// traffic. Non-2xx responses become *APIError carrying the status code and
// the raw body text. Transport failures are wrapped. There are no retries;
// the only timeout is the client's fixed upper bound.
package curation
