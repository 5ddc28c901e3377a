// Package kernel holds the value objects shared across the food ordering
// domain: identifiers and wall-clock time windows. Values are immutable and
// safe to copy.
package kernel
