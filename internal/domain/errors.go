package domain

import "errors"

var (
	ErrInvalidParameter       = errors.New("invalid parameter")
	ErrUpstreamUnavailable    = errors.New("upstream unavailable")
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	ErrTeamNotScheduled       = errors.New("team not scheduled")
)
