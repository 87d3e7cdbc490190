package domain

import "github.com/google/uuid"

// ID is the opaque 128-bit identifier used for every entity in the
// aggregate (teams, epochs, proposals, raffles, votes).
type ID = uuid.UUID

// NewID allocates a fresh random identifier.
func NewID() ID {
	return uuid.New()
}

// ZeroID is the unset identifier value.
var ZeroID ID

// ParseID parses a canonical UUID string into an ID.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ZeroID, InvalidArgument("ParseID", "malformed id %q: %v", s, err)
	}
	return id, nil
}
