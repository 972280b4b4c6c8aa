package requests

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrGameNotFound     = errors.New("game_not_found")
	ErrGameEnded        = errors.New("game_ended")
	ErrAlreadyRequested = errors.New("request_already_exists")
	ErrRequestNotFound  = errors.New("request_not_found")
	ErrAlreadyDecided   = errors.New("request_already_decided")
)
