package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-passport/internal/api/dto"
	"github.com/spec-kit/tenant-passport/internal/auth"
	"github.com/spec-kit/tenant-passport/internal/domain"
	"github.com/spec-kit/tenant-passport/internal/roles"
	apperrors "github.com/spec-kit/tenant-passport/pkg/util"
)

// RolesHandler records and clears role choices.
type RolesHandler struct {
	roles roles.Store
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleStore roles.Store) *RolesHandler {
	return &RolesHandler{roles: roleStore}
}

// Choose handles POST /choose-role and sends the caller to the chosen
// role's view, mirroring the chooser page.
func (h *RolesHandler) Choose(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("sign in required")
	}

	var req dto.ChooseRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	role := domain.Role(req.Role)
	if !domain.ValidRole(role) {
		return apperrors.NewValidationError("role must be tenant or manager", map[string]any{"role": req.Role})
	}

	if err := h.roles.Set(c.Context(), principal.Account.ID, role); err != nil {
		return apperrors.MapError(err)
	}
	return c.Redirect(role.HomePath(), http.StatusSeeOther)
}

// Clear handles DELETE /choose-role, removing any assignment. No-op when
// none exists.
func (h *RolesHandler) Clear(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("sign in required")
	}
	if err := h.roles.Clear(c.Context(), principal.Account.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Current handles GET /role, reporting the caller's role choice.
func (h *RolesHandler) Current(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("sign in required")
	}
	role, err := h.roles.Get(c.Context(), principal.Account.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.RoleResponse{Role: string(role)}})
}
