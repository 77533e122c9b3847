package chart

import "errors"

// ErrTableMismatch is returned when the weight and macros tables lack their
// expected fields, usually because they were passed in the wrong order.
var ErrTableMismatch = errors.New("something went wrong, you might have switched up your file inputs")
