// Package partner holds the delivery partner aggregate and its availability
// flag, the one piece of state shared between concurrent assignments.
package partner
