package model

import "errors"

// ErrExactlyOneRef is returned when a row that must reference exactly one of
// a user or a persona references both or neither. It aborts the write from
// inside the GORM BeforeSave hooks, so it covers creates and updates alike.
var ErrExactlyOneRef = errors.New("exactly one of user or persona must be set, not both or neither")

func exactlyOne(hasUser, hasPersona bool) error {
	if hasUser == hasPersona {
		return ErrExactlyOneRef
	}
	return nil
}
