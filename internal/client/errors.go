package client

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingCommand = errors.New("no command given")
)
