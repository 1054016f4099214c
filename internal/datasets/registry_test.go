// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package datasets

import (
	"errors"
	"testing"

	"github.com/tomtom215/topiclens/internal/config"
)

func TestNewRegistry_Builtins(t *testing.T) {
	r := NewRegistry(nil)

	if r.Len() != len(builtin) {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(builtin))
	}
	list := r.List()
	for i, d := range builtin {
		if list[i].ID != d.ID {
			t.Errorf("List()[%d] = %q, want %q", i, list[i].ID, d.ID)
		}
	}
}

func TestNewRegistry_Overrides(t *testing.T) {
	r := NewRegistry([]config.DatasetConfig{
		{ID: "base", Description: "Overridden"},
		{ID: " lens ", Link: "https://example.com/lens"},
		{ID: ""},
	})

	base, err := r.Get("base")
	if err != nil {
		t.Fatalf("Get(base) error = %v", err)
	}
	if base.Name != "Base" || base.Description != "Overridden" {
		t.Errorf("base = %+v, want name kept and description overridden", base)
	}

	lens, err := r.Get("lens")
	if err != nil {
		t.Fatalf("Get(lens) error = %v", err)
	}
	if lens.Name != "lens" {
		t.Errorf("Name = %q, want id fallback", lens.Name)
	}

	list := r.List()
	if last := list[len(list)-1].ID; last != "lens" {
		t.Errorf("last entry = %q, want lens appended", last)
	}
	if r.Len() != len(builtin)+1 {
		t.Errorf("Len() = %d, want %d", r.Len(), len(builtin)+1)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := NewRegistry(nil).Get("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
