package constants

import "fmt"

const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleParent     = "parent"
)

const ErrOnlyFinanceStaffCanAccess = "only admin or accountant may access %s"

func RoleErrorFinance(feature string) string {
	return fmt.Sprintf(ErrOnlyFinanceStaffCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleAccountant,
		RoleParent,
	}

	FinanceStaff = []string{
		RoleAdmin,
		RoleAccountant,
	}
)
