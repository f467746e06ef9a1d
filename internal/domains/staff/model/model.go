package model

import "errors"

const (
	EntityName = "staff"
)

var ErrStaffNotFound = errors.New("staff not found")

// Staff is attributed on every booking. PinHash is empty when the member needs no code to
// be selected.
type Staff struct {
	ID      string
	Name    string
	PinHash string
}

func (s Staff) HasPin() bool {
	return s.PinHash != ""
}
