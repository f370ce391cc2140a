package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tenant-passport/internal/api/http"
	"github.com/spec-kit/tenant-passport/internal/api/http/handlers"
	"github.com/spec-kit/tenant-passport/internal/auth"
	"github.com/spec-kit/tenant-passport/internal/domain"
	"github.com/spec-kit/tenant-passport/internal/repository"
	"github.com/spec-kit/tenant-passport/internal/roles"
	"github.com/spec-kit/tenant-passport/internal/routing"
	"github.com/spec-kit/tenant-passport/internal/service"
)

// fakeTicketRepo records calls; enough store behavior for handler tests.
type fakeTicketRepo struct {
	rows        []domain.Ticket
	nextSeq     int64
	createCalls int
}

var _ repository.TicketRepository = (*fakeTicketRepo)(nil)

func (f *fakeTicketRepo) ListByScope(_ context.Context, propertyKey string) ([]domain.Ticket, error) {
	scoped := []domain.Ticket{}
	for i := len(f.rows) - 1; i >= 0; i-- { // newest first
		if f.rows[i].PropertyKey == propertyKey {
			scoped = append(scoped, f.rows[i])
		}
	}
	return scoped, nil
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.createCalls++
	f.nextSeq++
	ticket.ID = fmt.Sprintf("tkt-%d", f.nextSeq)
	ticket.Seq = f.nextSeq
	ticket.CreatedAt = time.Now()
	f.rows = append(f.rows, *ticket)
	return nil
}

func (f *fakeTicketRepo) CreateMany(ctx context.Context, tickets []domain.Ticket) ([]domain.Ticket, error) {
	inserted := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if err := f.Create(ctx, &ticket); err != nil {
			return nil, err
		}
		inserted = append(inserted, ticket)
	}
	return inserted, nil
}

func (f *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) DeleteByScope(_ context.Context, propertyKey string) error {
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.PropertyKey != propertyKey {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

type testEnv struct {
	app   *fiber.App
	repo  *fakeTicketRepo
	roles roles.Store
}

// newTestEnv builds the navigation surface with an injected caller: signed
// controls session presence, role the stored assignment.
func newTestEnv(t *testing.T, signed bool, role domain.Role) *testEnv {
	t.Helper()

	repo := &fakeTicketRepo{}
	roleStore := roles.NewMemoryStore()
	ticketService := service.NewTicketService(repo, nil, "demo")
	pages := handlers.NewPagesHandler(roleStore, ticketService)
	rolesHandler := handlers.NewRolesHandler(roleStore)

	if signed && role != domain.RoleNone {
		if err := roleStore.Set(context.Background(), "acct-1", role); err != nil {
			t.Fatalf("seed role: %v", err)
		}
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	if signed {
		app.Use(func(c *fiber.Ctx) error {
			auth.SetPrincipal(c, &auth.Principal{
				Account: &domain.Account{ID: "acct-1", Email: "a@example.com"},
			})
			return c.Next()
		})
	}

	app.Get(routing.PathHome, pages.Home)
	app.Get(routing.PathAuth, pages.AuthPage)
	app.Get(routing.PathChooseRole, pages.ChooseRole)
	app.Post(routing.PathChooseRole, rolesHandler.Choose)
	app.Get(routing.PathSubmit, pages.SubmitPage)
	app.Post(routing.PathSubmit, pages.Submit)
	app.Get(routing.PathDashboard, pages.Dashboard)
	app.Post("/dashboard/tickets/:id/status", pages.UpdateTicketStatus)
	app.Post("/dashboard/reset", pages.ResetTickets)

	return &testEnv{app: app, repo: repo, roles: roleStore}
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func wantRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}

func TestSubmitPage_NoSessionRedirectsToAuth(t *testing.T) {
	env := newTestEnv(t, false, domain.RoleNone)
	resp := doJSON(t, env.app, http.MethodGet, "/submit", "")
	wantRedirect(t, resp, "/auth")
}

func TestSubmitPage_NoRoleRedirectsToChooser(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleNone)
	resp := doJSON(t, env.app, http.MethodGet, "/submit", "")
	wantRedirect(t, resp, "/choose-role")
}

func TestSubmitPage_TenantAllowed(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleTenant)
	resp := doJSON(t, env.app, http.MethodGet, "/submit", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestDashboard_TenantRedirectsToSubmit(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleTenant)
	resp := doJSON(t, env.app, http.MethodGet, "/dashboard", "")
	wantRedirect(t, resp, "/submit")
}

func TestDashboard_ManagerAllowed(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleManager)
	resp := doJSON(t, env.app, http.MethodGet, "/dashboard", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestChooseRolePage_AlreadyChosenRedirectsHome(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleManager)
	resp := doJSON(t, env.app, http.MethodGet, "/choose-role", "")
	wantRedirect(t, resp, "/dashboard")
}

func TestChooseRole_StoresAndRedirects(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleNone)
	resp := doJSON(t, env.app, http.MethodPost, "/choose-role", `{"role":"manager"}`)
	wantRedirect(t, resp, "/dashboard")

	role, err := env.roles.Get(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("Get role: %v", err)
	}
	if role != domain.RoleManager {
		t.Errorf("stored role = %q, want manager", role)
	}
}

func TestSubmit_BlankUnitDoesNotCreate(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleTenant)

	body := `{"name":"Manal","unit":"   ","category":"Plumbing","urgency":"Low","description":"Leak"}`
	resp := doJSON(t, env.app, http.MethodPost, "/submit", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if env.repo.createCalls != 0 {
		t.Errorf("create called %d times, want 0", env.repo.createCalls)
	}

	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_FAILED" {
		t.Errorf("code = %q, want VALIDATION_FAILED", envelope.Error.Code)
	}
	if _, ok := envelope.Error.Details["unit"]; !ok {
		t.Error("details missing unit field")
	}
}

func TestSubmit_ValidCreatesAndRedirectsToDashboard(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleTenant)

	body := `{"name":"Manal","unit":"302","category":"Plumbing","urgency":"Medium","description":"Leaky faucet"}`
	resp := doJSON(t, env.app, http.MethodPost, "/submit", body)
	wantRedirect(t, resp, "/dashboard")

	if env.repo.createCalls != 1 {
		t.Fatalf("create called %d times, want 1", env.repo.createCalls)
	}
	row := env.repo.rows[0]
	if row.Status != domain.TicketStatusNew {
		t.Errorf("status = %q, want New", row.Status)
	}
	if row.PropertyKey != "demo" {
		t.Errorf("scope = %q, want demo", row.PropertyKey)
	}
}

func TestDashboard_StatusFilterProjection(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleManager)

	for _, status := range []domain.TicketStatus{
		domain.TicketStatusNew,
		domain.TicketStatusResolved,
	} {
		_ = env.repo.Create(context.Background(), &domain.Ticket{
			PropertyKey: "demo", Name: "N", Unit: "1",
			Description: "d", Status: status,
		})
	}

	resp := doJSON(t, env.app, http.MethodGet, "/dashboard?status=Resolved", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var payload struct {
		Data []struct {
			Status domain.TicketStatus `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Status != domain.TicketStatusResolved {
		t.Errorf("data = %+v, want one Resolved ticket", payload.Data)
	}
}

func TestDashboard_UnknownFilterRejected(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleManager)
	resp := doJSON(t, env.app, http.MethodGet, "/dashboard?status=Closed", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateStatus_UnknownTicket404(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleManager)
	resp := doJSON(t, env.app, http.MethodPost, "/dashboard/tickets/missing/status", `{"status":"Resolved"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestReset_ReturnsSeedTickets(t *testing.T) {
	env := newTestEnv(t, true, domain.RoleManager)

	_ = env.repo.Create(context.Background(), &domain.Ticket{
		PropertyKey: "demo", Name: "Old", Unit: "9", Description: "stale",
		Status: domain.TicketStatusResolved,
	})

	resp := doJSON(t, env.app, http.MethodPost, "/dashboard/reset", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var payload struct {
		Data []struct {
			Name   string              `json:"name"`
			Status domain.TicketStatus `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("data len = %d, want 2 seeds", len(payload.Data))
	}
	if payload.Data[0].Name != "Amina" || payload.Data[1].Name != "Jordan" {
		t.Errorf("seed names = %s, %s, want Amina, Jordan", payload.Data[0].Name, payload.Data[1].Name)
	}
}
