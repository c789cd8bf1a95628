package game

import "errors"

var (
	ErrInvalidNickname   = errors.New("nickname must contain letters only")
	ErrInsufficientWords = errors.New("not enough words for this mode")
	ErrUnknownMode       = errors.New("unknown mode")
	ErrInvalidGuess      = errors.New("invalid guess")
	ErrSessionEnded      = errors.New("session ended")
)
