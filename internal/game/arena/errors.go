package arena

import "errors"

var ErrDisposed = errors.New("arena: accessed after dispose")
