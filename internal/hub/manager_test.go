package hub

import "testing"

func TestManagerAddGet(t *testing.T) {
	m := NewManager()
	h := New(Config{ServerID: "s1", Name: "One"}, &mockClient{}, quietLogger())

	if err := m.Add(h); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := m.Add(h); err == nil {
		t.Fatal("duplicate Add() should fail")
	}

	got, ok := m.Get("s1")
	if !ok || got != h {
		t.Fatalf("Get(s1) = %v, %v", got, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}
	if hubs := m.Hubs(); len(hubs) != 1 {
		t.Errorf("Hubs() = %v, want 1", hubs)
	}
}
