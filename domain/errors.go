package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
	ErrUpstream        = errors.New("upstream failure")
	ErrRateLimited     = errors.New("rate limit exceeded")
)

var (
	ErrRoomNotFound        = fmt.Errorf("%w: room not found", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("%w: participant not connected", ErrNotFound)
	ErrSessionNotFound     = fmt.Errorf("%w: session not found", ErrUnauthenticated)

	ErrNotHost        = fmt.Errorf("%w: only the host can do this", ErrForbidden)
	ErrTenantMismatch = fmt.Errorf("%w: room belongs to another enterprise", ErrForbidden)
	ErrNotMember      = fmt.Errorf("%w: not a member of this room", ErrUnauthorized)
	ErrNotDrawer      = fmt.Errorf("%w: only the drawer can draw now", ErrUnauthorized)

	ErrDuplicateConnection = fmt.Errorf("%w: participant already connected", ErrConflict)
	ErrRoomFull            = fmt.Errorf("%w: room is full", ErrConflict)
	ErrAlreadyGuessed      = fmt.Errorf("%w: already guessed correctly", ErrConflict)

	ErrGameInProgress      = fmt.Errorf("%w: game in progress", ErrInvalidState)
	ErrInsufficientPlayers = fmt.Errorf("%w: at least 2 players are needed", ErrInvalidState)
	ErrNoActiveRound       = fmt.Errorf("%w: no active round", ErrInvalidState)
	ErrDrawerCannotGuess   = fmt.Errorf("%w: drawer cannot guess", ErrInvalidState)
	ErrNoOnlinePlayers     = fmt.Errorf("%w: no online player can draw", ErrInvalidState)

	ErrCapacityOutOfRange = fmt.Errorf("%w: capacity must be between 2 and 12", ErrInvalidInput)
	ErrInvalidSettings    = fmt.Errorf("%w: invalid room settings", ErrInvalidInput)
	ErrInvalidRoomCode    = fmt.Errorf("%w: room code must be 4-10 alphanumeric characters", ErrInvalidInput)
	ErrUnknownCommand     = fmt.Errorf("%w: unknown command", ErrInvalidInput)

	ErrNoWordsAvailable = fmt.Errorf("%w: no words available", ErrUpstream)
)

// StatusCode maps an error kind to the HTTP status used in HTTP responses and WS error codes.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
