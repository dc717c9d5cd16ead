package notify

// Target is a resolved navigation destination.
type Target struct {
	Route  Route
	ItemID string // set only for parameterized routes
}

// Resolve maps a record to its navigation target. TargetItemID takes
// priority over Link; a record with neither resolves to nothing.
// The same resolution is used by the transient alert and the list view.
func Resolve(r Record) (Target, bool) {
	if r.TargetItemID != "" {
		return Target{Route: RouteMenuItem, ItemID: r.TargetItemID}, true
	}
	if r.Link != "" {
		return Target{Route: r.Link}, true
	}
	return Target{}, false
}
