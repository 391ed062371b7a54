package rbac

import (
	"context"
	"errors"
	"testing"

	"server/internal/domain"
	"server/internal/kv"
)

// countingStore wraps a Store and counts writes.
type countingStore struct {
	kv.Store
	puts int
}

func (c *countingStore) Put(ctx context.Context, key, value string) error {
	c.puts++
	return c.Store.Put(ctx, key, value)
}

// failingStore fails every operation, standing in for an unreachable store.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errStoreDown
}
func (failingStore) Put(context.Context, string, string) error { return errStoreDown }
func (failingStore) Incr(context.Context, string) (int64, error) {
	return 0, errStoreDown
}

func TestRoleDefaultsToFree(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemory())

	role, err := store.Role(ctx, "never-written")
	if err != nil {
		t.Fatalf("Role: %v", err)
	}
	if role != domain.RoleFree {
		t.Fatalf("Role = %q, want free", role)
	}
}

func TestSetRoleRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemory())

	for _, role := range []domain.Role{domain.RoleFree, domain.RolePro, domain.RoleAdmin} {
		if err := store.SetRole(ctx, "alice", role); err != nil {
			t.Fatalf("SetRole(%q): %v", role, err)
		}
		got, err := store.Role(ctx, "alice")
		if err != nil {
			t.Fatalf("Role: %v", err)
		}
		if got != role {
			t.Fatalf("Role = %q, want %q", got, role)
		}
	}
}

func TestRoleIgnoresUnknownStoredValue(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Put(ctx, "role:bob", "superuser"); err != nil {
		t.Fatal(err)
	}

	role, err := NewStore(mem).Role(ctx, "bob")
	if err != nil {
		t.Fatalf("Role: %v", err)
	}
	if role != domain.RoleFree {
		t.Fatalf("Role = %q, want free for unknown stored value", role)
	}
}

func TestEnsureProIdempotent(t *testing.T) {
	ctx := context.Background()
	counting := &countingStore{Store: kv.NewMemory()}
	store := NewStore(counting)

	first, err := store.EnsurePro(ctx, "alice")
	if err != nil {
		t.Fatalf("EnsurePro: %v", err)
	}
	second, err := store.EnsurePro(ctx, "alice")
	if err != nil {
		t.Fatalf("EnsurePro: %v", err)
	}
	if first != domain.RolePro || second != domain.RolePro {
		t.Fatalf("EnsurePro = %q then %q, want pro both times", first, second)
	}
	if counting.puts != 1 {
		t.Fatalf("EnsurePro performed %d writes, want 1", counting.puts)
	}
}

func TestEnsureProKeepsAdmin(t *testing.T) {
	ctx := context.Background()
	counting := &countingStore{Store: kv.NewMemory()}
	store := NewStore(counting)

	if err := store.SetRole(ctx, "root", domain.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	counting.puts = 0

	role, err := store.EnsurePro(ctx, "root")
	if err != nil {
		t.Fatalf("EnsurePro: %v", err)
	}
	if role != domain.RoleAdmin {
		t.Fatalf("EnsurePro = %q, want admin preserved", role)
	}
	if counting.puts != 0 {
		t.Fatalf("EnsurePro wrote %d times for an admin, want 0", counting.puts)
	}
}

func TestAllowlistIndependentOfRole(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemory())

	allowed, err := store.Allowlisted(ctx, "alice")
	if err != nil || allowed {
		t.Fatalf("Allowlisted default = %v, %v; want false, nil", allowed, err)
	}

	if err := store.SetAllowlisted(ctx, "alice", true); err != nil {
		t.Fatalf("SetAllowlisted: %v", err)
	}
	allowed, err = store.Allowlisted(ctx, "alice")
	if err != nil || !allowed {
		t.Fatalf("Allowlisted = %v, %v; want true, nil", allowed, err)
	}

	// allowlisting does not touch the role
	role, err := store.Role(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if role != domain.RoleFree {
		t.Fatalf("Role after allowlist = %q, want free", role)
	}
}

func TestStoreFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(failingStore{})

	if _, err := store.Role(ctx, "alice"); !errors.Is(err, errStoreDown) {
		t.Fatalf("Role err = %v, want store failure", err)
	}
	if _, err := store.EnsurePro(ctx, "alice"); !errors.Is(err, errStoreDown) {
		t.Fatalf("EnsurePro err = %v, want store failure", err)
	}
	if err := store.SetRole(ctx, "alice", domain.RolePro); !errors.Is(err, errStoreDown) {
		t.Fatalf("SetRole err = %v, want store failure", err)
	}
	if _, err := store.Allowlisted(ctx, "alice"); !errors.Is(err, errStoreDown) {
		t.Fatalf("Allowlisted err = %v, want store failure", err)
	}
}
