package enums

// UserRole mirrors the role claim issued by the credential provider.
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCustomer, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) String() string { return string(r) }
