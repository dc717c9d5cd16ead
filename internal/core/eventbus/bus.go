package eventbus

import "sync"

// EventBus dispatches events synchronously to subscribers, in
// registration order, on the publisher's goroutine. Subscribers must be
// fast and must not publish recursively to the same topic.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[Event][]func(any)
}

// New creates an empty event bus.
func New() *EventBus {
	return &EventBus{handlers: make(map[Event][]func(any))}
}

func (b *EventBus) subscribe(event Event, fn func(any)) {
	b.mu.Lock()
	b.handlers[event] = append(b.handlers[event], fn)
	b.mu.Unlock()
}

func (b *EventBus) publish(event Event, payload any) {
	b.mu.RLock()
	handlers := make([]func(any), len(b.handlers[event]))
	copy(handlers, b.handlers[event])
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(payload)
	}
}

// SubscribeOrderReceived registers a handler for order.received.
func (b *EventBus) SubscribeOrderReceived(fn func(OrderReceivedPayload)) {
	b.subscribe(EventOrderReceived, func(p any) {
		if payload, ok := p.(OrderReceivedPayload); ok {
			fn(payload)
		}
	})
}

// PublishOrderReceived publishes an order.received event.
func (b *EventBus) PublishOrderReceived(p OrderReceivedPayload) {
	b.publish(EventOrderReceived, p)
}

// SubscribeOrderStatusChanged registers a handler for order.status-changed.
func (b *EventBus) SubscribeOrderStatusChanged(fn func(OrderStatusChangedPayload)) {
	b.subscribe(EventOrderStatusChanged, func(p any) {
		if payload, ok := p.(OrderStatusChangedPayload); ok {
			fn(payload)
		}
	})
}

// PublishOrderStatusChanged publishes an order.status-changed event.
func (b *EventBus) PublishOrderStatusChanged(p OrderStatusChangedPayload) {
	b.publish(EventOrderStatusChanged, p)
}

// SubscribeMenuItemSaved registers a handler for menu.item-saved.
func (b *EventBus) SubscribeMenuItemSaved(fn func(MenuItemSavedPayload)) {
	b.subscribe(EventMenuItemSaved, func(p any) {
		if payload, ok := p.(MenuItemSavedPayload); ok {
			fn(payload)
		}
	})
}

// PublishMenuItemSaved publishes a menu.item-saved event.
func (b *EventBus) PublishMenuItemSaved(p MenuItemSavedPayload) {
	b.publish(EventMenuItemSaved, p)
}

// SubscribeMenuItemDeleted registers a handler for menu.item-deleted.
func (b *EventBus) SubscribeMenuItemDeleted(fn func(MenuItemDeletedPayload)) {
	b.subscribe(EventMenuItemDeleted, func(p any) {
		if payload, ok := p.(MenuItemDeletedPayload); ok {
			fn(payload)
		}
	})
}

// PublishMenuItemDeleted publishes a menu.item-deleted event.
func (b *EventBus) PublishMenuItemDeleted(p MenuItemDeletedPayload) {
	b.publish(EventMenuItemDeleted, p)
}

// SubscribeStaffInvited registers a handler for staff.invited.
func (b *EventBus) SubscribeStaffInvited(fn func(StaffInvitedPayload)) {
	b.subscribe(EventStaffInvited, func(p any) {
		if payload, ok := p.(StaffInvitedPayload); ok {
			fn(payload)
		}
	})
}

// PublishStaffInvited publishes a staff.invited event.
func (b *EventBus) PublishStaffInvited(p StaffInvitedPayload) {
	b.publish(EventStaffInvited, p)
}

// SubscribeReportReady registers a handler for report.ready.
func (b *EventBus) SubscribeReportReady(fn func(ReportReadyPayload)) {
	b.subscribe(EventReportReady, func(p any) {
		if payload, ok := p.(ReportReadyPayload); ok {
			fn(payload)
		}
	})
}

// PublishReportReady publishes a report.ready event.
func (b *EventBus) PublishReportReady(p ReportReadyPayload) {
	b.publish(EventReportReady, p)
}
