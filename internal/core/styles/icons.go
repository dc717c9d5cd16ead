package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconBell    = "\U000F009A" // 󰂚
	IconSuccess = "✓"
	IconError   = "✗"
	IconInfo    = "•"
	IconDot     = "•"
	IconArrow   = "→"
)

// KindIcon returns the icon for a notification kind string.
func KindIcon(kind string) string {
	switch kind {
	case "success":
		return IconSuccess
	case "error":
		return IconError
	default:
		return IconInfo
	}
}
