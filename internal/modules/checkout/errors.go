package checkout

import "errors"

// ErrNoValidItems: every settlement item was filtered out, so there is
// nothing to charge.
var ErrNoValidItems = errors.New("no valid items for the checkout preference")
