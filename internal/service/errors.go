package service

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrTableStopped   = errors.New("table is not running")
	ErrUnknownCommand = errors.New("unknown command")
)
