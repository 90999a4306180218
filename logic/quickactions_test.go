package logic

import (
	"testing"

	"github.com/Bumblebig/UniSupport/models"
)

func TestFilterQuickActions(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{CategoryAll, 8},
		{"portal", 2},
		{"registration", 2},
		{"fees", 2},
		{"technical", 2},
		{"unknown", 0},
	}

	for _, tt := range tests {
		got := FilterQuickActions(tt.category)
		if len(got) != tt.want {
			t.Errorf("FilterQuickActions(%q) returned %d entries, want %d", tt.category, len(got), tt.want)
		}
		for _, qa := range got {
			if tt.category != CategoryAll && qa.Category != tt.category {
				t.Errorf("FilterQuickActions(%q) returned entry with category %q", tt.category, qa.Category)
			}
		}
	}
}

func TestFilterQuickActionsKeepsCatalogueOrder(t *testing.T) {
	all := FilterQuickActions(CategoryAll)
	fees := FilterQuickActions("fees")

	var expect []models.QuickAction
	for _, qa := range all {
		if qa.Category == "fees" {
			expect = append(expect, qa)
		}
	}

	if len(fees) != len(expect) {
		t.Fatalf("got %d fees entries, want %d", len(fees), len(expect))
	}
	for i := range fees {
		if fees[i] != expect[i] {
			t.Errorf("entry %d = %+v, want %+v", i, fees[i], expect[i])
		}
	}
}

func TestFilterQuickActionsIsPure(t *testing.T) {
	first := FilterQuickActions(CategoryAll)
	first[0].Text = "mutated"

	second := FilterQuickActions(CategoryAll)
	if second[0].Text == "mutated" {
		t.Error("FilterQuickActions returned a shared slice; mutation leaked into the catalogue")
	}
}
