package domain

// Role роль аккаунта, выдаваемая провайдером идентификации
type Role string

const (
	// RoleOwner владелец площадки (claim "admin")
	RoleOwner Role = "admin"
	// RoleCustomer клиент, бронирующий слоты
	RoleCustomer Role = "customer"
)

// IsValid reports whether the role is one the service understands
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleCustomer
}

// Principal authenticated caller. It is passed explicitly into every
// service and use case call.
type Principal struct {
	AccountID string
	Email     string
	Role      Role
}

// IsOwner returns true if the principal may manage fields and slots
func (p Principal) IsOwner() bool {
	return p.AccountID != "" && p.Role == RoleOwner
}

// IsCustomer returns true if the principal may reserve slots
func (p Principal) IsCustomer() bool {
	return p.AccountID != "" && p.Role == RoleCustomer
}
