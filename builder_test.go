package identkit

import (
	"context"
	"errors"
	"testing"
)

func TestBuilderRequiresIdentityProvider(t *testing.T) {
	if _, err := New().Build(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady without identity provider, got %v", err)
	}
}

func TestBuilderRequiresVerifierAndStoreTogether(t *testing.T) {
	_, err := New().
		WithIdentityProvider(&stubIdentityProvider{identity: testIdentity()}).
		WithVerifier(&stubVerifier{}).
		Build()
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("verifier without pending store must not build, got %v", err)
	}

	_, err = New().
		WithIdentityProvider(&stubIdentityProvider{identity: testIdentity()}).
		WithPendingEmailStore(NewMemoryPendingEmailStore()).
		Build()
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("pending store without verifier must not build, got %v", err)
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Routes.Login = ""

	_, err := New().
		WithConfig(cfg).
		WithIdentityProvider(&stubIdentityProvider{identity: testIdentity()}).
		Build()
	if err == nil {
		t.Fatalf("expected config validation failure")
	}
}

func TestBuilderIsSingleUse(t *testing.T) {
	b := New().WithIdentityProvider(&stubIdentityProvider{identity: testIdentity()})
	if _, err := b.Build(); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("second build must fail, got %v", err)
	}
}

func TestBuilderWiresFullCore(t *testing.T) {
	pending := NewMemoryPendingEmailStore()
	core, err := New().
		WithIdentityProvider(&stubIdentityProvider{identity: testIdentity()}).
		WithLogoutProvider(&stubLogoutProvider{}).
		WithVerifier(&stubVerifier{}).
		WithPendingEmailStore(pending).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if core.Guard == nil || core.Session == nil || core.Verification == nil {
		t.Fatalf("core missing components: %+v", core)
	}

	decision := core.Guard.Check(context.Background())
	if !decision.Admitted() {
		t.Fatalf("wired guard must admit the stub identity")
	}

	core.Close()
	if core.Session.Valid() {
		t.Fatalf("close must discard local identity")
	}
}

func TestBuilderReusesSuppliedSession(t *testing.T) {
	session := NewSessionState()
	var notified bool
	session.Subscribe(func(Snapshot) { notified = true })

	core, err := New().
		WithIdentityProvider(&stubIdentityProvider{identity: testIdentity()}).
		WithSessionState(session).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if core.Session != session {
		t.Fatalf("builder must keep the supplied session container")
	}

	core.Guard.Check(context.Background())
	if !notified {
		t.Fatalf("pre-registered observer must see guard mutations")
	}
}
