package insight

import "strings"

// DisplayDirection resolves the direction to render. The model's value
// wins when it committed to one; an Unknown or empty direction falls
// back to a filename heuristic: a case-insensitive "inbound" substring
// means Inbound, anything else defaults to Outbound.
func DisplayDirection(callDirection, fileName string) string {
	if callDirection != "" && callDirection != DirectionUnknown {
		return callDirection
	}
	if strings.Contains(strings.ToLower(fileName), "inbound") {
		return DirectionInbound
	}
	return DirectionOutbound
}
