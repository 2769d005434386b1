package entity

const roomIDSeparator = "#"

// NewRoomID - mints the shared room identifier for a matched pair.
// The waiter's id comes first, so the value is fixed by arrival order;
// both members of the pair receive the exact same identifier.
func NewRoomID(waiterID, joinerID string) string {
	return waiterID + roomIDSeparator + joinerID
}
