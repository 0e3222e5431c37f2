package favorites

import (
	"context"
	"time"

	"github.com/luwei/smart-travel/internal/domain/geo"
	"github.com/luwei/smart-travel/internal/domain/outfit"
)

// Route is a saved route, keyed by the client-supplied device ID (the app
// has no user accounts).
type Route struct {
	ID          string               `json:"id"`
	DeviceID    string               `json:"deviceId"`
	Name        string               `json:"name"`
	Origin      geo.Location         `json:"origin"`
	Destination geo.Location         `json:"destination"`
	Mode        outfit.TransportMode `json:"transportMode"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// SaveRequest is the payload accepted by the save endpoint.
type SaveRequest struct {
	DeviceID    string       `json:"deviceId"`
	Name        string       `json:"name"`
	Origin      geo.Location `json:"origin"`
	Destination geo.Location `json:"destination"`
	Mode        string       `json:"transportMode"`
}

// Repository is the persistence boundary for favorite routes.
type Repository interface {
	Insert(ctx context.Context, route Route) error
	ListByDevice(ctx context.Context, deviceID string) ([]Route, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, deviceID, id string) (bool, error)
}
