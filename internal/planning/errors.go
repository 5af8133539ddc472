package planning

import "errors"

// Validation failures are data-integrity errors, they propagate to the caller
// and are never retried.
var (
	ErrInvalidQtyPer  = errors.New("quantity per unit must be positive")
	ErrNegativeStock  = errors.New("stock level cannot be negative")
	ErrNegativeDemand = errors.New("demand rate cannot be negative")
	ErrInvalidHorizon = errors.New("horizon must be at least one week")

	// ErrUndefinedBuildability marks a finished good with no BOM lines: it has
	// no defined buildability and must not be classified as blocked or out of
	// stock.
	ErrUndefinedBuildability = errors.New("buildability undefined: finished good has no BOM lines")
)
