package session

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/product-console/internal/form"
	"github.com/rogerio-castellano/product-console/internal/models"
)

func TestMemoryStoreSaveLoad(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	st := NewState()
	st.SetValue(form.FieldName, "Hat")
	st.Flash("Success")
	st.ShowResults([]models.Product{{ID: "1", Name: "Hat"}})

	if err := s.Save(ctx, "abc", st, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "abc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Value(form.FieldName) != "Hat" {
		t.Errorf("expected name 'Hat', got %q", got.Value(form.FieldName))
	}
	if got.Message != "Success" {
		t.Errorf("expected flash 'Success', got %q", got.Message)
	}
	if len(got.Results) != 1 || got.Results[0].Key() != "1" {
		t.Errorf("unexpected results %+v", got.Results)
	}

	// loaded state must not alias the stored one
	got.SetValue(form.FieldName, "changed")
	again, _ := s.Load(ctx, "abc")
	if again.Value(form.FieldName) != "Hat" {
		t.Errorf("stored state was modified through a loaded copy")
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Load(context.Background(), "nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Save(ctx, "a", NewState(), time.Minute)
	_ = s.Save(ctx, "b", NewState(), 0)

	now = now.Add(2 * time.Minute)
	if _, err := s.Load(ctx, "a"); err != ErrSessionNotFound {
		t.Errorf("expected expired session, got %v", err)
	}
	if _, err := s.Load(ctx, "b"); err != nil {
		t.Errorf("expected session without ttl to survive, got %v", err)
	}

	_ = s.Save(ctx, "c", NewState(), time.Second)
	now = now.Add(time.Minute)
	s.Sweep()
	if s.Len() != 1 {
		t.Errorf("expected 1 session after sweep, got %d", s.Len())
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Save(ctx, "a", NewState(), 0)
	_ = s.Delete(ctx, "a")
	if _, err := s.Load(ctx, "a"); err != ErrSessionNotFound {
		t.Errorf("expected deleted session to be gone, got %v", err)
	}
}
