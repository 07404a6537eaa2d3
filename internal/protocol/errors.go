package protocol

import "errors"

var (
	ErrUnknownIntent   = errors.New("unknown intent type")
	ErrMalformedIntent = errors.New("malformed intent")
)
