package simplelru

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	// ErrInvalidCapacity is returned by NewLRU when the size is not positive.
	ErrInvalidCapacity = fmt.Errorf("%w: must provide a positive size", errdefs.ErrInvalidArgument)

	// ErrNilKey is the panic value of any keyed operation called with a nil
	// key, for key types that can be nil.
	ErrNilKey = fmt.Errorf("%w: nil key", errdefs.ErrInvalidArgument)
)
