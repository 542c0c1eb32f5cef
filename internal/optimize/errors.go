package optimize

import "github.com/pkg/errors"

// ErrUnsupportedGate indicates a gate the stage cannot handle, such as a
// Toffoli reaching the slicer before decomposition.
var ErrUnsupportedGate = errors.New("optimize: unsupported gate")
