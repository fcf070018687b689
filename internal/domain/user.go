package domain

// Role distinguishes the two account types in the system.
type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

// User represents an account in the identity store. Identity is keyed by
// email; the optional profile fields are only populated for driver accounts.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`

	// Driver profile fields.
	Rating      float64 `json:"rating,omitempty"`
	Car         string  `json:"car,omitempty"`
	PlateNumber string  `json:"plate_number,omitempty"`
	Phone       string  `json:"phone,omitempty"`
}
