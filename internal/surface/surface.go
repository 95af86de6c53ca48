// Package surface is where a playback engine is shown. A surface holds at most
// one engine at a time.
package surface

import (
	"errors"

	"github.com/llehouerou/tideplay/internal/engine"
)

// ErrOccupied is returned when attaching while another engine is attached.
var ErrOccupied = errors.New("surface already has an attached engine")

// Surface accepts one engine at a time.
type Surface interface {
	Attach(e engine.Engine) error
	// Detach removes e. Detaching an engine that is not attached is a no-op.
	Detach(e engine.Engine)
}
