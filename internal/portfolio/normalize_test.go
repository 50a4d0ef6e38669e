package portfolio

import (
	"errors"
	"testing"
)

func TestNormalizeDefaultFills(t *testing.T) {
	var doc Document
	doc.Normalize()

	if doc.AdminConfig == nil {
		t.Fatalf("adminConfig not filled")
	}
	if doc.Experience == nil || doc.Projects == nil || doc.Skills == nil {
		t.Fatalf("slices not filled")
	}
	if doc.UI.Nav == nil || doc.UI.Gallery.Filters == nil {
		t.Fatalf("ui maps not filled")
	}
}

func TestEffectivePasswordFallsBack(t *testing.T) {
	var doc Document
	if got := doc.EffectivePassword(); got != FallbackAdminPassword {
		t.Fatalf("effective password = %q", got)
	}

	doc.AdminConfig = &AdminConfig{Password: "s3cret"}
	if got := doc.EffectivePassword(); got != "s3cret" {
		t.Fatalf("effective password = %q", got)
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	doc := Seed(LangEN)
	doc.Projects[1].ID = doc.Projects[0].ID

	if err := doc.Validate(); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestValidateRejectsFilterOnlyCategory(t *testing.T) {
	doc := Seed(LangEN)
	doc.Projects[0].Category = CategoryAll

	if err := doc.Validate(); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestCloneIsStructurallyIndependent(t *testing.T) {
	doc := Seed(LangEN)
	clone := doc.Clone()

	clone.Projects[0].Title = "changed"
	clone.UI.Nav["home"] = "changed"

	if doc.Projects[0].Title == "changed" {
		t.Fatalf("clone shares projects slice with source")
	}
	if doc.UI.Nav["home"] == "changed" {
		t.Fatalf("clone shares nav map with source")
	}
}
