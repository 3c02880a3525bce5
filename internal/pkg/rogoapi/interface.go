package rogoapi

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Location is a physical site registered in the backend.
type Location struct {
	UUID    strfmt.UUID `json:"uuid"`
	Label   string      `json:"label"`
	Address string      `json:"address,omitempty"`
}

// Group is a set of devices controlled together (a room, typically).
type Group struct {
	UUID         strfmt.UUID     `json:"uuid"`
	Name         string          `json:"name"`
	LocationUUID strfmt.UUID     `json:"locationUuid,omitempty"`
	CreatedAt    strfmt.DateTime `json:"createdAt,omitempty"`
}

// Backend is the read surface of the Rogo cloud used by the demo
// client: auxiliary entity lists only, command execution goes through
// the SDK dispatcher.
type Backend interface {
	WithAccessToken(token string) Backend
	WithTimeout(d time.Duration) Backend
	Locations() ([]Location, error)
	Groups() ([]Group, error)
}
