package service

import "errors"

// ErrValidation marks caller-correctable input problems. Handlers answer it
// with a 4xx and the wrapped detail; anything else unrecognized is a server
// error.
var ErrValidation = errors.New("invalid input")
