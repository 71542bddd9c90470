// Package alert implements the notification manager: named containers of
// transient alerts, each removed either by an explicit dismiss or by its
// own expiry timer, whichever happens first.
//
// Removal is idempotent. The second trigger for an alert that is already
// gone is a silent no-op, so callers never need to know which trigger won.
package alert
