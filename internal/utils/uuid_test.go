package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	gen := NewUUIDGenerator()

	first := gen.Generate()
	second := gen.Generate()

	if err := uuid.Validate(first); err != nil {
		t.Fatalf("expected valid UUID, got '%s': %v", first, err)
	}
	if first == second {
		t.Error("expected distinct UUIDs on consecutive calls")
	}
}

func TestUUIDGenerator_V7IsSortable(t *testing.T) {
	gen := NewUUIDGenerator()

	// v7 IDs embed a timestamp, so later IDs compare greater. This
	// property keeps attachment ordering stable on equal created_at.
	first := gen.Generate()
	second := gen.Generate()

	if first >= second {
		t.Errorf("expected '%s' < '%s'", first, second)
	}
}
