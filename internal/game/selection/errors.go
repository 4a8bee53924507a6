package selection

import "errors"

var ErrNoVariants = errors.New("selection: no variants to choose from")
