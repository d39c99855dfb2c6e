package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleOwner           = "owner"
	RoleBillingOperator = "billing_operator"
	RoleAnalyst         = "analyst"
	RoleSupport         = "support"
	RoleSuperAdmin      = "super_admin"
	RoleBillingDaemon   = "billing_daemon" // hidden role for scheduled runs
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsHiddenRole(role string) bool { return role == RoleBillingDaemon }
