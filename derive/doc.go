// Package derive computes the analytics values served at the boundary:
// per-route efficiency summaries, aggregate map statistics, and tracking
// predictions for a selected vehicle.
//
// Every function here is pure over the snapshot sets it is handed.
// Results are rebuilt from scratch each refresh cycle; nothing in this
// package feeds a previous output back into the next computation.
package derive
