package entity

import "time"

// Roles válidos para User.
const (
	RoleAdministrator    = "administrator"
	RoleCashier          = "cashier"
	RoleInventoryManager = "inventory_manager"
)

// User representa un operador del punto de venta.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // administrator, cashier, inventory_manager
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanSell indica si el rol puede registrar ventas.
func (u *User) CanSell() bool {
	return u.Role == RoleAdministrator || u.Role == RoleCashier
}

// CanManageInventory indica si el rol puede modificar productos y stock.
func (u *User) CanManageInventory() bool {
	return u.Role == RoleAdministrator || u.Role == RoleInventoryManager
}
