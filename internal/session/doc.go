// Package session owns the query lifecycle state.
//
// Two variants cover the two views of the UI:
//
//   - PhaseController is the single-shot state machine
//     (idle → loading → results | empty | error) gating which view renders.
//     It is plain single-goroutine state owned by the UI model.
//
//   - Thread is the conversation variant: each submission appends a user
//     message and a streaming assistant placeholder, and the response (or
//     error) later resolves the placeholder by ID. Thread is mutex-guarded
//     because resolution arrives from a command goroutine.
//
// Overlapping submissions in thread mode are a policy, not an invariant:
// OverlapBlock refuses a second submission while one is pending,
// OverlapAllow lets them race, with each response resolving only its own
// placeholder regardless of arrival order.
package session
