package user

// Roles assignable to an account. The role travels inside the JWT so
// privileged routes never trust a client-writable field.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ValidRole reports whether role is one of the known role strings.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}
