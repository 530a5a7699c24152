package main

import "testing"

func TestParseAttributionPrefixedForm(t *testing.T) {
	attr := parseAttribution("Ausgangssong von: Max")
	if !attr.Prefixed || attr.Name != "Max" {
		t.Fatalf("expected prefixed 'Max', got %+v", attr)
	}

	// Legacy sheets sometimes omit the colon.
	attr = parseAttribution("Ausgangssong von Max Mustermann ")
	if !attr.Prefixed || attr.Name != "Max Mustermann" {
		t.Fatalf("expected prefixed 'Max Mustermann', got %+v", attr)
	}
}

func TestParseAttributionBareForm(t *testing.T) {
	attr := parseAttribution("  Max  ")
	if attr.Prefixed || attr.Name != "Max" {
		t.Fatalf("expected bare 'Max', got %+v", attr)
	}
}

func TestResolveSeedContributor(t *testing.T) {
	if name, ok := resolveSeedContributor(TextCell("Ausgangssong von: Max")); !ok || name != "Max" {
		t.Fatalf("prefixed form: got (%q, %v)", name, ok)
	}
	if name, ok := resolveSeedContributor(TextCell("Max")); !ok || name != "Max" {
		t.Fatalf("bare form: got (%q, %v)", name, ok)
	}
	if _, ok := resolveSeedContributor(EmptyCell()); ok {
		t.Fatalf("empty cell must not resolve")
	}
	if _, ok := resolveSeedContributor(OtherCell()); ok {
		t.Fatalf("non-text cell must not resolve")
	}
	if _, ok := resolveSeedContributor(TextCell("Ausgangssong von:   ")); ok {
		t.Fatalf("prefix without a name must not resolve")
	}
}

func TestResolveMatchContributor(t *testing.T) {
	if name, ok := resolveMatchContributor(TextCell(" Anusch M. ")); !ok || name != "Anusch M." {
		t.Fatalf("got (%q, %v)", name, ok)
	}
	if _, ok := resolveMatchContributor(EmptyCell()); ok {
		t.Fatalf("empty cell must not resolve")
	}
	if _, ok := resolveMatchContributor(TextCell("   ")); ok {
		t.Fatalf("whitespace-only cell must not resolve")
	}
}
