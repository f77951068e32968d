// Package testutil holds in-memory stand-ins for the stores and brokers used
// by the usecases. Each fake guards its state with a mutex so concurrent
// tests observe the same atomicity the real backends give.
package testutil
