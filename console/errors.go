package console

import "errors"

// ErrBufferAlloc is returned by New when the shadow buffer cannot be allocated.
// Console setup is abandoned; the boot sequence decides what to do next.
var ErrBufferAlloc = errors.New("console: shadow buffer allocation failed")
