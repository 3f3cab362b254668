package auth

import (
	"errors"
	"testing"
)

func TestMockStoreRoundTrip(t *testing.T) {
	store := NewMockStore()

	account := &Account{
		Handle:    "superlig_fan",
		AuthToken: "token123",
		CSRFToken: "ct0value",
	}

	if err := store.Store(account); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := store.Retrieve("superlig_fan")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got.AuthToken != "token123" || got.CSRFToken != "ct0value" {
		t.Errorf("Retrieve returned %+v", got)
	}

	if !store.Exists("superlig_fan") {
		t.Error("Exists should be true after Store")
	}
	if store.Exists("nobody") {
		t.Error("Exists should be false for unknown handle")
	}
}

func TestMockStoreDelete(t *testing.T) {
	store := NewMockStore()
	_ = store.Store(&Account{Handle: "a", AuthToken: "t", CSRFToken: "c"})

	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Retrieve("a"); !errors.Is(err, ErrCredentialsNotFound) {
		t.Errorf("Retrieve after Delete returned %v, want ErrCredentialsNotFound", err)
	}
}

func TestManagerValidation(t *testing.T) {
	m := NewManagerWithStores(NewMockStore())

	tests := []struct {
		name    string
		account *Account
	}{
		{"missing handle", &Account{AuthToken: "t", CSRFToken: "c"}},
		{"missing auth token", &Account{Handle: "h", CSRFToken: "c"}},
		{"missing csrf token", &Account{Handle: "h", AuthToken: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.Store(tt.account); err == nil {
				t.Error("Store should reject incomplete credentials")
			}
		})
	}
}

func TestManagerFallback(t *testing.T) {
	broken := NewMockStore()
	broken.StoreError = ErrStoreUnavailable
	broken.RetrieveError = ErrStoreUnavailable

	working := NewMockStore()

	m := NewManagerWithStores(broken, working)

	account := &Account{Handle: "h", AuthToken: "t", CSRFToken: "c"}
	if err := m.Store(account); err != nil {
		t.Fatalf("Store with fallback: %v", err)
	}

	got, err := m.Retrieve("h")
	if err != nil {
		t.Fatalf("Retrieve with fallback: %v", err)
	}
	if got.AuthToken != "t" {
		t.Errorf("Retrieve returned %+v", got)
	}
}

func TestManagerSetsLastModified(t *testing.T) {
	store := NewMockStore()
	m := NewManagerWithStores(store)

	account := &Account{Handle: "h", AuthToken: "t", CSRFToken: "c"}
	if err := m.Store(account); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := m.Retrieve("h")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got.LastModified.IsZero() {
		t.Error("Store should stamp LastModified")
	}
}
