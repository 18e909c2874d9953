// Package reconcile runs the scan, decide and apply phases across adapters.
//
// Scan is read-only and produces a Report: the complete list of pending
// changes. Decide turns the report and the caller's policy into a single
// conflict mode for the whole run, asking the operator at most once. Run
// chains the phases and applies every adapter in order with that mode.
package reconcile
