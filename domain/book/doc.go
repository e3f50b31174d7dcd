// Package book implements the in-memory matching engine for a single
// instrument. It maintains two AVL price trees for the bid and ask
// sides plus two trees of armed stop orders, matches incoming market
// and limit orders under strict price-time priority, and publishes
// trade reports into a lock-free SPSC ring drained by one consumer.
//
// The book is a single-writer system: every mutating call must come
// from the same goroutine. Order and price-level records live in
// fixed-size arenas threaded onto free lists, so steady-state
// operation performs no heap allocation.
package book
