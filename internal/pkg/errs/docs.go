// Package errs provides standardized error types for the food ordering backend.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the failure kinds the order engine reports:
//   - ObjectNotFoundError: a referenced entity does not exist
//   - ConflictError: a unique key is already taken (e.g. a registered email)
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ItemUnavailableError: a menu item is not orderable at the requested instant
//   - InvalidTransitionError: an illegal order status change
//   - PartnerUnavailableError: a delivery partner is already busy
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// KindOf maps any error onto one of the Kind values so boundary layers can
// translate failures into transport specific codes. Errors that match no
// sentinel are KindInternal.
package errs
