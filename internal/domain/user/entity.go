package user

import "time"

// User represents a user entity in the system.
type User struct {
	ID        int64     // ID is the storage-assigned unique identifier
	Name      string    // Name is the display name, no uniqueness constraint
	Email     string    // Email is unique across all users
	CreatedAt time.Time // CreatedAt is set once at first persistence
}
