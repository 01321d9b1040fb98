package switch_active_role

// SwitchRoleRequest HTTP request model
type SwitchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=client companion admin"`
}
