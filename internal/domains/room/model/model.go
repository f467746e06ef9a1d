package model

import (
	"errors"
	"fmt"
)

const (
	EntityName = "room"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrInvalidStatus = errors.New("invalid room status")
	ErrInvalidType   = errors.New("invalid room type")
)

// Type is the room category. It never changes after the room is created.
type Type string

const (
	TypeTwin   Type = "Twin Room"
	TypeDouble Type = "Double Bed"
)

// Types lists every room type in board section order.
var Types = []Type{TypeTwin, TypeDouble}

func (t Type) IsValid() bool {
	switch t {
	case TypeTwin, TypeDouble:
		return true
	default:
		return false
	}
}

func ParseType(value string) (Type, error) {
	t := Type(value)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, value)
	}

	return t, nil
}

type Status string

const (
	StatusReady      Status = "Ready"
	StatusOccupied   Status = "Occupied"
	StatusCleaning   Status = "Cleaning"
	StatusOutOfOrder Status = "Out of Order"
)

// Statuses lists every status in cycle order.
var Statuses = []Status{StatusReady, StatusOccupied, StatusCleaning, StatusOutOfOrder}

var nextStatus = map[Status]Status{
	StatusReady:      StatusOccupied,
	StatusOccupied:   StatusCleaning,
	StatusCleaning:   StatusOutOfOrder,
	StatusOutOfOrder: StatusReady,
}

func (s Status) IsValid() bool {
	_, ok := nextStatus[s]

	return ok
}

// Next is the successor of s in the manual cycle. An unknown status restarts the cycle at Ready.
func (s Status) Next() Status {
	if next, ok := nextStatus[s]; ok {
		return next
	}

	return StatusReady
}

func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}

	return s, nil
}

type Room struct {
	ID     string
	Name   string
	Type   Type
	Status Status
}
