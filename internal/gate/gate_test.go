package gate_test

import (
	"testing"

	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/gate"
)

func TestResolve_NoSessionDeniesEveryRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleManager, domain.RoleTrainer, domain.RoleMember} {
		g := gate.New(role, nil)
		if got := g.Resolve(nil); got != gate.Denied {
			t.Errorf("Resolve(nil) for %s: got %v, want Denied", role, got)
		}
		if g.RedirectTarget() != gate.LoginPath {
			t.Errorf("RedirectTarget: got %q, want %q", g.RedirectTarget(), gate.LoginPath)
		}
	}
}

func TestResolve_RoleMismatchDenies(t *testing.T) {
	sess := &domain.Session{Role: domain.RoleTrainer, Token: "tok"}
	g := gate.New(domain.RoleManager, nil)
	if got := g.Resolve(sess); got != gate.Denied {
		t.Errorf("trainer session against manager gate: got %v, want Denied", got)
	}
}

func TestResolve_MatchingRoleAllows(t *testing.T) {
	sess := &domain.Session{Role: domain.RoleManager, Token: "tok"}
	g := gate.New(domain.RoleManager, nil)
	if got := g.Resolve(sess); got != gate.Allowed {
		t.Errorf("manager session against manager gate: got %v, want Allowed", got)
	}
}

func TestResolve_IsTerminal(t *testing.T) {
	manager := &domain.Session{Role: domain.RoleManager, Token: "tok"}

	// Denied stays denied even if a valid session shows up later.
	g := gate.New(domain.RoleManager, nil)
	g.Resolve(nil)
	if got := g.Resolve(manager); got != gate.Denied {
		t.Errorf("re-resolving a denied gate: got %v, want Denied", got)
	}

	// Allowed stays allowed for the same view instance, and never
	// regresses to pending.
	g2 := gate.New(domain.RoleManager, nil)
	g2.Resolve(manager)
	if got := g2.Resolve(nil); got != gate.Allowed {
		t.Errorf("re-resolving an allowed gate: got %v, want Allowed", got)
	}
}

func TestNoEscalationAcrossGates(t *testing.T) {
	// An allow on a manager gate must not leak into a trainer gate checked
	// with the same session.
	manager := &domain.Session{Role: domain.RoleManager, Token: "tok"}
	if got := gate.New(domain.RoleManager, nil).Resolve(manager); got != gate.Allowed {
		t.Fatalf("manager gate: got %v, want Allowed", got)
	}
	if got := gate.New(domain.RoleTrainer, nil).Resolve(manager); got != gate.Denied {
		t.Errorf("trainer gate with manager session: got %v, want Denied", got)
	}
}
