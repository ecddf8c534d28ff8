package recall

import "errors"

// Sentinel errors for the recall package.
// Use errors.Is to check: errors.Is(err, recall.ErrInvalidRating)
var (
	ErrInvalidRating  = errors.New("recall: invalid rating")
	ErrInvalidWeights = errors.New("recall: weights out of bounds")
)
