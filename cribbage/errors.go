package cribbage

import "errors"

var (
	ErrGameOver    = errors.New("game already ended")
	ErrOutOfTurn   = errors.New("action out of turn")
	ErrCardNotHeld = errors.New("card not in hand")
	ErrIllegalPlay = errors.New("play would exceed 31")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }
