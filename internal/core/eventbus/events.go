// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within tablekit. Producers in the order,
// menu, and staff flows publish here; the notification router turns
// events into notification records.
package eventbus

// Event identifies an event topic.
type Event string

// Event topics, sorted A-Z.
const (
	EventMenuItemDeleted    Event = "menu.item-deleted"
	EventMenuItemSaved      Event = "menu.item-saved"
	EventOrderReceived      Event = "order.received"
	EventOrderStatusChanged Event = "order.status-changed"
	EventReportReady        Event = "report.ready"
	EventStaffInvited       Event = "staff.invited"
)

// OrderReceivedPayload is emitted when a new order arrives.
type OrderReceivedPayload struct {
	OrderID string
	Table   string
	Total   string
}

// OrderStatusChangedPayload is emitted when an order changes status.
type OrderStatusChangedPayload struct {
	OrderID string
	Status  string
}

// MenuItemSavedPayload is emitted when a menu item is created or edited.
type MenuItemSavedPayload struct {
	ItemID string
	Name   string
}

// MenuItemDeletedPayload is emitted when a menu item is removed.
type MenuItemDeletedPayload struct {
	ItemID string
	Name   string
}

// StaffInvitedPayload is emitted when a staff member is invited.
type StaffInvitedPayload struct {
	Name string
}

// ReportReadyPayload is emitted when a sales report finishes generating.
type ReportReadyPayload struct {
	Period string
}
