// Package timer provides the clock abstraction shared by the debouncer and
// the alert manager, and Slot, a holder for at most one pending timer.
package timer
