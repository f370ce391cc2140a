package roles_test

import (
	"context"
	"testing"

	"github.com/spec-kit/tenant-passport/internal/domain"
	"github.com/spec-kit/tenant-passport/internal/roles"
)

func TestMemoryStore_SetThenGet(t *testing.T) {
	store := roles.NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "user-1", domain.RoleManager); err != nil {
		t.Fatalf("Set: %v", err)
	}
	role, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if role != domain.RoleManager {
		t.Errorf("role = %q, want manager", role)
	}
}

func TestMemoryStore_UnknownIdentityAbsent(t *testing.T) {
	store := roles.NewMemoryStore()
	role, err := store.Get(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if role != domain.RoleNone {
		t.Errorf("role = %q, want absent", role)
	}
}

func TestMemoryStore_BlankIdentityIsNoOp(t *testing.T) {
	store := roles.NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "", domain.RoleTenant); err != nil {
		t.Fatalf("Set: %v", err)
	}
	role, err := store.Get(ctx, "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if role != domain.RoleNone {
		t.Errorf("role = %q, want absent after blank-identity set", role)
	}
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	store := roles.NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "user-1", domain.RoleTenant)
	_ = store.Set(ctx, "user-1", domain.RoleManager)

	role, _ := store.Get(ctx, "user-1")
	if role != domain.RoleManager {
		t.Errorf("role = %q, want manager after overwrite", role)
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := roles.NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "user-1", domain.RoleTenant)
	if err := store.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	role, _ := store.Get(ctx, "user-1")
	if role != domain.RoleNone {
		t.Errorf("role = %q, want absent after clear", role)
	}

	// Clearing again, or clearing a blank identity, is a no-op.
	if err := store.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if err := store.Clear(ctx, ""); err != nil {
		t.Fatalf("blank Clear: %v", err)
	}
}
