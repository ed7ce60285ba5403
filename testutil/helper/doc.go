// Package helper provides test doubles shared by the package tests:
// a logger spy and metrics collector spy for observability assertions,
// and an in-memory partition store with failure injection.
package helper
