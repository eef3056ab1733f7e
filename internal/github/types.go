package github

// Account types reported by the users endpoint
const (
	AccountTypeUser         = "User"
	AccountTypeBot          = "Bot"
	AccountTypeOrganization = "Organization"
)

// Permission levels reported by the collaborator permission endpoint
const (
	PermissionAdmin    = "admin"
	PermissionMaintain = "maintain"
	PermissionWrite    = "write"
	PermissionTriage   = "triage"
	PermissionRead     = "read"
	PermissionNone     = "none"
)

// HasWriteAccess reports whether level grants write access to the repository
func HasWriteAccess(level string) bool {
	return level == PermissionAdmin || level == PermissionWrite
}
