// Package starter contains the supervisor core: the monitor loop that
// keeps the resolved target alive, the terminal error taxonomy with its
// exit-code mapping, metrics collection, and operator-facing reporting.
package starter
