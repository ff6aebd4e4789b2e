package models

import "github.com/golang-jwt/jwt/v5"

// Operator permissions
const (
	PermissionTimelockExtend = "timelock:extend"
	PermissionAuditRead      = "audit:read"
)

// OperatorClaims identify a caller allowed to submit transactions.
type OperatorClaims struct {
	jwt.RegisteredClaims
	Operator    string   `json:"operator"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *OperatorClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
