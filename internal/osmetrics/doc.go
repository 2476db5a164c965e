// Package osmetrics reads per-process OS counters that the repetition tester
// correlates with its samples.
//
// Page faults are an optional feature: on platforms where the count cannot be
// read, Available reports false and ReadPageFaults returns 0, and reports omit
// the page-fault columns instead of failing.
package osmetrics
