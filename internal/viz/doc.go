// Package viz renders a live control-room view of a running shot in the
// terminal. The dashboard charts the main plasma channels, lists the
// derived figures and safety alerts, and allows vertical control gains
// to be tuned while the shot runs.
package viz
