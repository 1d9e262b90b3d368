package player

// RolePlayer is the role a user needs to own bookings.
const RolePlayer = "PLAYER"

// Player is the read-only view of a user who can own bookings.
type Player struct {
	ID       string
	FullName string
	Role     string
}
