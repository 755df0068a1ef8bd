package repos

import (
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/teamwear/weatherfit-backend/internal/types"
)

func dryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	if err != nil {
		t.Fatalf("open dry db: %v", err)
	}
	return db
}

func TestCandidateSearchTemperatureBoundsInclusive(t *testing.T) {
	db := dryDB(t)
	temp := 21
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var ids []int64
		return candidateSearchQuery(tx, ClothingSearchCondition{Temp: &temp}).Pluck("id", &ids)
	})

	// An item whose bound equals the temperature must stay eligible.
	for _, want := range []string{
		"suitable_min_temp IS NULL OR suitable_min_temp <= 21",
		"suitable_max_temp IS NULL OR suitable_max_temp >= 21",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in %s", want, sql)
		}
	}
	if strings.Contains(sql, "< 21") || strings.Contains(sql, "> 21") {
		t.Errorf("temperature bounds must not be exclusive: %s", sql)
	}
}

func TestCandidateSearchFiltersAndOrdering(t *testing.T) {
	db := dryDB(t)
	temp := 8
	cat := types.CategoryOuter
	thick := types.ThicknessThick
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var ids []int64
		return candidateSearchQuery(tx, ClothingSearchCondition{
			Category:  &cat,
			Temp:      &temp,
			UsageIn:   []types.UsageType{types.UsageOutdoor, types.UsageBoth},
			Thickness: &thick,
			Limit:     50,
		}).Pluck("id", &ids)
	})

	for _, want := range []string{
		`category = "OUTER"`,
		`usage_type IN ("OUTDOOR","BOTH")`,
		`thickness_level = "THICK"`,
		"selected_count DESC",
		"id DESC",
		"LIMIT 50",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in %s", want, sql)
		}
	}
}

func TestIncrementSelectedIsSingleUpdate(t *testing.T) {
	db := dryDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return incrementSelectedUpdate(tx, 7)
	})

	if !strings.HasPrefix(sql, "UPDATE") {
		t.Fatalf("want a single UPDATE statement, got %s", sql)
	}
	if !strings.Contains(sql, "selected_count + 1") {
		t.Errorf("counter must be bumped in place, got %s", sql)
	}
	if !strings.Contains(sql, "id = 7") {
		t.Errorf("update must be conditional on the id, got %s", sql)
	}
	if strings.Contains(sql, "SELECT") {
		t.Errorf("no read-modify-write allowed: %s", sql)
	}
}
