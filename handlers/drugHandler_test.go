package handlers

import (
	"strings"
	"testing"
)

func TestQuantityUpdateNote(t *testing.T) {
	if note := quantityUpdateNote(40, 40); note != "" {
		t.Errorf("matching quantities should produce no note, got %q", note)
	}

	note := quantityUpdateNote(999, 40)
	if note == "" {
		t.Fatal("a discarded quantity must be called out, not dropped silently")
	}
	if !strings.Contains(note, "40") {
		t.Errorf("note should name the effective quantity, got %q", note)
	}
}
