package core

import (
	"errors"
)

var (
	ErrUniformNotFound    = errors.New("uniform not found in effect")
	ErrUnsupportedType    = errors.New("unsupported parameter type")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrInvalidBlendWeight = errors.New("blend weight out of [0, 1] range")
	ErrUnknown            = errors.New("unknown")
)
