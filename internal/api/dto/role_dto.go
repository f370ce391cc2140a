package dto

// ChooseRoleRequest records the caller's role choice.
type ChooseRoleRequest struct {
	Role string `json:"role"`
}

// RoleResponse reports the caller's current role; empty means not chosen.
type RoleResponse struct {
	Role string `json:"role"`
}
