// package service implements the program workflows on top of the registry
// and the session store: identity, phase sequencing, the application
// lifecycle, meetings, chat and feedback artifacts.
package service

import (
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

// parseDate accepts RFC 3339 timestamps and bare dates; phase forms send
// either depending on the picker.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", s)
}
