package middleware

import "shopforge/internal/model"

// Capability strings checked on admin routes.
const (
	PermInventoryView  = "INVENTORY:VIEW"
	PermInventoryWrite = "INVENTORY:WRITE"
	PermAnalyticsView  = "ANALYTICS:VIEW"
	PermSettingsView   = "SETTINGS:VIEW"
	PermSettingsWrite  = "SETTINGS:WRITE"
)

// rolePermissions maps each role to its capability set. Staff can look but
// not touch; managers run the floor and may read store settings; admins
// additionally change them.
var rolePermissions = map[string][]string{
	model.RoleSuperadmin: {PermInventoryView, PermInventoryWrite, PermAnalyticsView, PermSettingsView, PermSettingsWrite},
	model.RoleAdmin:      {PermInventoryView, PermInventoryWrite, PermAnalyticsView, PermSettingsView, PermSettingsWrite},
	model.RoleManager:    {PermInventoryView, PermInventoryWrite, PermAnalyticsView, PermSettingsView},
	model.RoleStaff:      {PermInventoryView},
}

// HasPermission reports whether the role carries the named permission.
func HasPermission(role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
