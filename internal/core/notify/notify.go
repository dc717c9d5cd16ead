// Package notify implements the in-app notification log: an ordered,
// durable collection of user-facing notification records, the derived
// unread count, and the navigation resolution shared by every consumer.
package notify

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind is a presentation hint for a notification. It never changes
// behavior, only how the record is rendered.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Route is a fixed in-app destination a notification can link to.
type Route string

const (
	RouteOrders   Route = "orders"
	RouteMenu     Route = "menu"
	RouteMenuItem Route = "menu-item"
	RouteStaff    Route = "staff"
	RouteReports  Route = "reports"
	RouteSettings Route = "settings"
)

// ValidRoute reports whether r is one of the known destinations.
func ValidRoute(r Route) bool {
	switch r {
	case RouteOrders, RouteMenu, RouteMenuItem, RouteStaff, RouteReports, RouteSettings:
		return true
	}
	return false
}

// Record is a single notification. Records are immutable after creation
// except for the Read flag, which only ever flips false to true.
type Record struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Kind         Kind      `json:"kind"`
	CreatedAt    time.Time `json:"createdAt"`
	Read         bool      `json:"read"`
	Link         Route     `json:"link,omitempty"`
	TargetItemID string    `json:"targetItemId,omitempty"`
}

// NewID returns a time-ordered unique record ID.
func NewID() string {
	return ulid.Make().String()
}
