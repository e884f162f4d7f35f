package atlas

import "errors"

// ErrRegionsOutstanding indicates Close was called while regions were still
// allocated. The manager releases its memory anyway.
var ErrRegionsOutstanding = errors.New("atlas: allocated regions outstanding at close")
