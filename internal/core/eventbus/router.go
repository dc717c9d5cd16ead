package eventbus

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/tablekit/tablekit/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
// Topics matching a mute pattern are dropped before reaching the log.
type NotificationRouter struct {
	bus  *EventBus
	log  *notify.Log
	mute []string
}

// NewNotificationRouter constructs a router for event-to-notification
// mappings. Mute patterns are doublestar globs matched against topics.
func NewNotificationRouter(bus *EventBus, notifyLog *notify.Log, mute []string) *NotificationRouter {
	return &NotificationRouter{bus: bus, log: notifyLog, mute: mute}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil || r.log == nil {
		return
	}

	r.bus.SubscribeOrderReceived(func(p OrderReceivedPayload) {
		r.add(EventOrderReceived, notify.Record{
			Title:   "New order",
			Message: fmt.Sprintf("Order #%s for table %s — %s", p.OrderID, p.Table, p.Total),
			Kind:    notify.KindInfo,
			Link:    notify.RouteOrders,
		})
	})

	r.bus.SubscribeOrderStatusChanged(func(p OrderStatusChangedPayload) {
		kind := notify.KindSuccess
		if p.Status == "cancelled" {
			kind = notify.KindError
		}
		r.add(EventOrderStatusChanged, notify.Record{
			Title:   "Order updated",
			Message: fmt.Sprintf("Order #%s is now %s", p.OrderID, p.Status),
			Kind:    kind,
			Link:    notify.RouteOrders,
		})
	})

	r.bus.SubscribeMenuItemSaved(func(p MenuItemSavedPayload) {
		r.add(EventMenuItemSaved, notify.Record{
			Title:        "Menu item saved",
			Message:      fmt.Sprintf("%q was saved", p.Name),
			Kind:         notify.KindSuccess,
			TargetItemID: p.ItemID,
		})
	})

	r.bus.SubscribeMenuItemDeleted(func(p MenuItemDeletedPayload) {
		r.add(EventMenuItemDeleted, notify.Record{
			Title:   "Menu item removed",
			Message: fmt.Sprintf("%q was removed from the menu", p.Name),
			Kind:    notify.KindInfo,
			Link:    notify.RouteMenu,
		})
	})

	r.bus.SubscribeStaffInvited(func(p StaffInvitedPayload) {
		r.add(EventStaffInvited, notify.Record{
			Title:   "Staff invited",
			Message: fmt.Sprintf("%s was invited to the team", p.Name),
			Kind:    notify.KindSuccess,
			Link:    notify.RouteStaff,
		})
	})

	r.bus.SubscribeReportReady(func(p ReportReadyPayload) {
		r.add(EventReportReady, notify.Record{
			Title:   "Report ready",
			Message: fmt.Sprintf("Sales report for %s is ready", p.Period),
			Kind:    notify.KindSuccess,
			Link:    notify.RouteReports,
		})
	})
}

func (r *NotificationRouter) add(topic Event, rec notify.Record) {
	if r.muted(topic) {
		log.Debug().Str("topic", string(topic)).Msg("notification muted")
		return
	}
	r.log.Add(rec)
}

func (r *NotificationRouter) muted(topic Event) bool {
	for _, pattern := range r.mute {
		ok, err := doublestar.Match(pattern, string(topic))
		if err != nil {
			// Invalid patterns are rejected at config validation; skip here.
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
