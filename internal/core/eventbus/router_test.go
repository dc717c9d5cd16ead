package eventbus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/internal/core/eventbus"
	"github.com/tablekit/tablekit/internal/core/notify"
)

func newRouter(t *testing.T, mute ...string) (*eventbus.EventBus, *notify.Log) {
	t.Helper()
	bus := eventbus.New()
	notifyLog := notify.NewLog(nil)
	eventbus.NewNotificationRouter(bus, notifyLog, mute).Register()
	return bus, notifyLog
}

func latest(t *testing.T, l *notify.Log) notify.Record {
	t.Helper()
	items := l.All()
	require.NotEmpty(t, items)
	return items[0]
}

func TestNotificationRouter_OrderReceived(t *testing.T) {
	bus, l := newRouter(t)

	bus.PublishOrderReceived(eventbus.OrderReceivedPayload{OrderID: "88", Table: "4", Total: "$31.50"})

	rec := latest(t, l)
	assert.Equal(t, notify.KindInfo, rec.Kind)
	assert.Equal(t, "New order", rec.Title)
	assert.Contains(t, rec.Message, "Order #88")
	assert.Equal(t, notify.RouteOrders, rec.Link)
	assert.False(t, rec.Read)
}

func TestNotificationRouter_OrderCancelled_is_error(t *testing.T) {
	bus, l := newRouter(t)

	bus.PublishOrderStatusChanged(eventbus.OrderStatusChangedPayload{OrderID: "88", Status: "cancelled"})

	assert.Equal(t, notify.KindError, latest(t, l).Kind)
}

func TestNotificationRouter_MenuItemSaved_targets_item(t *testing.T) {
	bus, l := newRouter(t)

	bus.PublishMenuItemSaved(eventbus.MenuItemSavedPayload{ItemID: "item-7", Name: "Carbonara"})

	rec := latest(t, l)
	assert.Equal(t, notify.KindSuccess, rec.Kind)
	assert.Equal(t, "item-7", rec.TargetItemID)

	target, ok := notify.Resolve(rec)
	require.True(t, ok)
	assert.Equal(t, notify.RouteMenuItem, target.Route)
	assert.Equal(t, "item-7", target.ItemID)
}

func TestNotificationRouter_StaffInvited(t *testing.T) {
	bus, l := newRouter(t)

	bus.PublishStaffInvited(eventbus.StaffInvitedPayload{Name: "Priya"})

	rec := latest(t, l)
	assert.Equal(t, notify.RouteStaff, rec.Link)
	assert.Contains(t, rec.Message, "Priya")
}

func TestNotificationRouter_mute_patterns(t *testing.T) {
	bus, l := newRouter(t, "order.*")

	bus.PublishOrderReceived(eventbus.OrderReceivedPayload{OrderID: "1"})
	bus.PublishOrderStatusChanged(eventbus.OrderStatusChangedPayload{OrderID: "1", Status: "ready"})
	assert.Equal(t, 0, l.Len())

	bus.PublishReportReady(eventbus.ReportReadyPayload{Period: "July"})
	assert.Equal(t, 1, l.Len())
}
