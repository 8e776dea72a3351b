package domain

import "time"

type User struct {
	ID           string
	Username     string
	Name         string
	ImageID      *string
	PasswordHash string
	CreatedAt    time.Time
}

// DisplayName returns the user's name, falling back to the username.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

type Pantry struct {
	ID        string
	Title     string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Item struct {
	ID           string
	Title        string
	Content      string
	Quantity     float64
	QuantityUnit string
	OwnerID      string
	PantryID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Image struct {
	ID         string
	StorageKey string
	MimeType   string
	CreatedAt  time.Time
}

// Defaults applied to the quantity fields when a record is written.
const (
	DefaultQuantity     = 1
	DefaultQuantityUnit = "count"
)

// QuantityUnits is the fixed set of recognized quantity units.
var QuantityUnits = []string{
	"count", "g", "kg", "oz", "lbs", "ml", "l", "cup", "tbsp", "tsp",
}

// IsQuantityUnit reports whether unit belongs to QuantityUnits.
func IsQuantityUnit(unit string) bool {
	for _, u := range QuantityUnits {
		if u == unit {
			return true
		}
	}
	return false
}
