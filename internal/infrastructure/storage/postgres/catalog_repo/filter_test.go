package catalog_repo

import (
	"testing"
)

func newTestRepo(cols []string) *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", cols, func() any { return nil })
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo([]string{"id", "name", "created_at", "stock_qty"})

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"empty defaults to name", "", "name ASC", false},
		{"plain field", "created_at", "created_at ASC", false},
		{"explicit ascending", "+stock_qty", "stock_qty ASC", false},
		{"descending prefix", "-created_at", "created_at DESC", false},
		{"unknown field rejected", "password_hash", "", true},
		{"injection rejected", "name; DROP TABLE test_table", "", true},
		{"bare minus rejected", "-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseOrderBy_DefaultsWithoutName(t *testing.T) {
	// Entities without a name column fall back to created_at, then id.
	repo := newTestRepo([]string{"id", "created_at", "message"})
	got, err := repo.parseOrderBy("")
	if err != nil {
		t.Fatalf("parseOrderBy failed: %v", err)
	}
	if got != "created_at DESC" {
		t.Errorf("expected created_at DESC, got %q", got)
	}

	repo = newTestRepo([]string{"id", "quantity"})
	got, err = repo.parseOrderBy("")
	if err != nil {
		t.Fatalf("parseOrderBy failed: %v", err)
	}
	if got != "id ASC" {
		t.Errorf("expected id ASC, got %q", got)
	}
}

func TestHasColumn(t *testing.T) {
	repo := newTestRepo([]string{"id", "name", "email"})

	if !repo.hasColumn("email") {
		t.Error("expected email to be present")
	}
	if repo.hasColumn("code") {
		t.Error("did not expect code to be present")
	}
}
