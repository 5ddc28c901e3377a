// Package order contains the Order aggregate: the lines with their
// snapshotted prices, the status state machine and delivery partner binding.
//
// The aggregate records domain events for every change; the persistence
// layer publishes them after the transaction that stored the change commits.
package order
