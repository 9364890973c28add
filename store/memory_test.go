package store

import (
	"context"
	"testing"
)

func TestMemoryLoadMissingIsZeroRecord(t *testing.T) {
	m := NewMemory()

	record, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !record.IsEmpty() || record.IdentityID != "" {
		t.Fatalf("expected zero record, got %+v", record)
	}
}

func TestMemorySaveLoadRoundTrip(t *testing.T) {
	m := NewMemory()

	in := Record{
		GuestToken:   "g1",
		IdentityID:   "i1",
		TokenVersion: 1,
		Roles:        []string{"guard"},
		User:         &UserProfile{ID: "u1", Contacts: []string{"555"}},
	}
	if err := m.Save(context.Background(), in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.GuestToken != "g1" || out.IdentityID != "i1" || out.TokenVersion != 1 {
		t.Fatalf("unexpected record %+v", out)
	}

	// The stored record must not alias caller slices.
	out.Roles[0] = "tampered"
	out.User.Contacts[0] = "tampered"

	again, _ := m.Load(context.Background())
	if again.Roles[0] != "guard" || again.User.Contacts[0] != "555" {
		t.Fatalf("expected stored record isolated, got %+v", again)
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	if err := m.Save(context.Background(), Record{GuestToken: "g1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := m.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	record, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !record.IsEmpty() {
		t.Fatalf("expected empty record after clear, got %+v", record)
	}
}

func TestRecordPredicates(t *testing.T) {
	if (Record{}).HasBearerPair() || (Record{}).HasGuest() {
		t.Fatal("zero record must carry no credentials")
	}
	if !(Record{}).IsEmpty() {
		t.Fatal("zero record must be empty")
	}
	if (Record{AccessToken: "a"}).HasBearerPair() {
		t.Fatal("access token alone is not a bearer pair")
	}
	if !(Record{AccessToken: "a", RefreshToken: "r"}).HasBearerPair() {
		t.Fatal("expected bearer pair")
	}
	if !(Record{IdentityID: "i1"}).IsEmpty() {
		t.Fatal("identity id must not count as a credential")
	}
}
