package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-passport/internal/api/dto"
	"github.com/spec-kit/tenant-passport/internal/auth"
	"github.com/spec-kit/tenant-passport/internal/domain"
	"github.com/spec-kit/tenant-passport/internal/roles"
	"github.com/spec-kit/tenant-passport/internal/routing"
	"github.com/spec-kit/tenant-passport/internal/service"
	apperrors "github.com/spec-kit/tenant-passport/pkg/util"
)

// PagesHandler serves the five-route navigation surface. Each page applies
// the routing decision table first and either redirects (303, a replacing
// navigation) or renders its view payload.
type PagesHandler struct {
	roles   roles.Store
	tickets *service.TicketService
}

// NewPagesHandler constructs handler.
func NewPagesHandler(roleStore roles.Store, ticketService *service.TicketService) *PagesHandler {
	return &PagesHandler{roles: roleStore, tickets: ticketService}
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	hasSession, role, err := h.caller(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"page":       "home",
		"title":      "Tenant Passport",
		"signed_in":  hasSession,
		"role":       string(role),
		"next_steps": []string{routing.PathSubmit, routing.PathDashboard},
	})
}

// AuthPage handles GET /auth.
func (h *PagesHandler) AuthPage(c *fiber.Ctx) error {
	hasSession, _, err := h.caller(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"page":      "auth",
		"signed_in": hasSession,
		"modes":     []string{"signin", "signup"},
	})
}

// ChooseRole handles GET /choose-role.
func (h *PagesHandler) ChooseRole(c *fiber.Ctx) error {
	if done, err := h.gate(c, routing.PathChooseRole); done || err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"page":  "choose-role",
		"roles": []domain.Role{domain.RoleTenant, domain.RoleManager},
	})
}

// SubmitPage handles GET /submit.
func (h *PagesHandler) SubmitPage(c *fiber.Ctx) error {
	if done, err := h.gate(c, routing.PathSubmit); done || err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"page":       "submit",
		"categories": domain.Categories(),
		"urgencies":  domain.Urgencies(),
	})
}

// Submit handles POST /submit: required-field check before any store call,
// then create and send the caller to the dashboard.
func (h *PagesHandler) Submit(c *fiber.Ctx) error {
	if done, err := h.gate(c, routing.PathSubmit); done || err != nil {
		return err
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := missingRequiredFields(req); len(details) > 0 {
		return apperrors.NewValidationError("please fill out name, unit number, and description", details)
	}

	category := domain.TicketCategory(req.Category)
	if !domain.ValidCategory(category) {
		category = domain.CategoryOther
	}
	urgency := domain.TicketUrgency(req.Urgency)
	if !domain.ValidUrgency(urgency) {
		urgency = domain.UrgencyLow
	}

	if _, err := h.tickets.Create(c.Context(), service.TicketCreateInput{
		Name:        req.Name,
		Unit:        req.Unit,
		City:        req.City,
		State:       req.State,
		Category:    category,
		Urgency:     urgency,
		Description: req.Description,
	}); err != nil {
		return err
	}
	return c.Redirect(routing.PathDashboard, http.StatusSeeOther)
}

// Dashboard handles GET /dashboard, listing tickets through the status filter.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	if done, err := h.gate(c, routing.PathDashboard); done || err != nil {
		return err
	}

	filter := domain.FilterAll
	if raw := c.Query("status"); raw != "" {
		filter = domain.StatusFilter(raw)
		if !domain.ValidStatusFilter(filter) {
			return apperrors.NewValidationError("unknown status filter", map[string]any{"status": raw})
		}
	}

	tickets, err := h.tickets.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"page":    "dashboard",
		"filter":  filter,
		"filters": domain.StatusFilters(),
		"data":    dto.NewTicketResponses(domain.FilterByStatus(tickets, filter)),
	})
}

// UpdateTicketStatus handles POST /dashboard/tickets/:id/status.
func (h *PagesHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	if done, err := h.gate(c, routing.PathDashboard); done || err != nil {
		return err
	}

	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status := domain.TicketStatus(req.Status)
	if !domain.ValidStatus(status) {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	ticket, err := h.tickets.UpdateStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ResetTickets handles POST /dashboard/reset, restoring the seed data.
func (h *PagesHandler) ResetTickets(c *fiber.Ctx) error {
	if done, err := h.gate(c, routing.PathDashboard); done || err != nil {
		return err
	}

	tickets, err := h.tickets.Reset(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// gate applies the decision table for path. When the decision is a redirect
// it writes the 303 and reports done=true.
func (h *PagesHandler) gate(c *fiber.Ctx, path string) (bool, error) {
	hasSession, role, err := h.caller(c)
	if err != nil {
		return false, err
	}
	decision := routing.Decide(path, hasSession, role)
	if decision.Allow {
		return false, nil
	}
	return true, c.Redirect(decision.RedirectTo, http.StatusSeeOther)
}

func (h *PagesHandler) caller(c *fiber.Ctx) (bool, domain.Role, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return false, domain.RoleNone, nil
	}
	role, err := h.roles.Get(c.Context(), principal.Account.ID)
	if err != nil {
		return true, domain.RoleNone, apperrors.MapError(err)
	}
	return true, role, nil
}

func missingRequiredFields(req dto.CreateTicketRequest) map[string]any {
	details := map[string]any{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "required"
	}
	if strings.TrimSpace(req.Unit) == "" {
		details["unit"] = "required"
	}
	if strings.TrimSpace(req.Description) == "" {
		details["description"] = "required"
	}
	return details
}
