// Package config handles curio's environment-style configuration.
//
// # Overview
//
// Curio talks to one backend and needs very little configuration: where
// that backend lives and how result relevance should be displayed. All of
// it comes from the process environment, optionally preloaded from a .env
// file in the working directory (or a path given with -env).
//
// # Variables
//
//   - CURIO_BASE_URL: backend base address (default http://localhost:8000).
//     A bare host:port such as 127.0.0.1:8000 is accepted; the http scheme
//     is added by the client.
//   - CURIO_SCORE_MODE: one of stars (default), score_pct, rel_pct, none.
//     Unknown values log a warning and fall back to stars.
//   - CURIO_TOP_K: how many books to request per query (default 5, clamped
//     to the backend's accepted 1..20 range).
//
// # Precedence
//
// Variables already present in the process environment win over .env file
// values. Load never mutates configuration after startup; the resulting
// Config is passed by value to the pieces that need it.
package config
