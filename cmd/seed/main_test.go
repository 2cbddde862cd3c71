package main

import "testing"

func TestCell(t *testing.T) {
	row := []string{"a", " b ", ""}

	if got := cell(row, 0); got != "a" {
		t.Errorf("cell(row, 0) = %q, want a", got)
	}
	if got := cell(row, 1); got != "b" {
		t.Errorf("cell(row, 1) = %q, want trimmed b", got)
	}
	if got := cell(row, 2); got != "" {
		t.Errorf("cell(row, 2) = %q, want empty", got)
	}
	if got := cell(row, 7); got != "" {
		t.Errorf("cell past end = %q, want empty", got)
	}
}

func TestContains(t *testing.T) {
	options := []string{"Paris", "London", "Berlin"}

	if !contains(options, "London") {
		t.Error("expected London to be found")
	}
	if contains(options, "Madrid") {
		t.Error("did not expect Madrid to be found")
	}
	if contains(options, "paris") {
		t.Error("matching should be case sensitive")
	}
}
