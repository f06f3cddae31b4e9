package search

import (
	"strings"
	"testing"
	"time"
)

func TestIsAutosuggest(t *testing.T) {
	cases := []struct {
		name string
		f    Filters
		want bool
	}{
		{"short query alone", Filters{Q: "ars"}, true},
		{"long query", Filters{Q: "arsenal"}, false},
		{"exactly at threshold", Filters{Q: "arse"}, false},
		{"empty query", Filters{}, false},
		{"short query with league filter", Filters{Q: "ars", Leagues: []string{"1"}}, false},
		{"short query with date filter", Filters{Q: "ars", Date: "2026-08-01"}, false},
		{"short query with status filter", Filters{Q: "ars", MatchStatus: "live"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.IsAutosuggest(); got != tc.want {
				t.Errorf("IsAutosuggest() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizedDefaults(t *testing.T) {
	f := Filters{}.Normalized()
	if f.Page != 1 || f.Limit != 20 {
		t.Errorf("Normalized defaults = page %d limit %d, want 1/20", f.Page, f.Limit)
	}
}

func TestNormalizedFiltersCategories(t *testing.T) {
	f := Filters{Categories: []string{"Highlights", "bogus", "All Goals"}}.Normalized()
	if len(f.Categories) != 2 {
		t.Fatalf("Normalized categories = %v, want two valid entries", f.Categories)
	}
	if f.Categories[0] != "Highlights" || f.Categories[1] != "All Goals" {
		t.Errorf("Normalized categories = %v", f.Categories)
	}
}

// countPlaceholders 数出SQL里的占位符个数
func countPlaceholders(query string) int {
	return strings.Count(query, "?")
}

func TestBuildQueryNoFilters(t *testing.T) {
	now := time.Now()
	query, args := BuildQuery(Filters{Page: 1, Limit: 20}, ModeNatural, now)

	if strings.Contains(query, "WHERE") {
		t.Error("empty filters should not produce a WHERE clause")
	}
	// 只剩LIMIT/OFFSET两个参数
	if len(args) != 2 {
		t.Errorf("args = %v, want [limit offset]", args)
	}
	if countPlaceholders(query) != len(args) {
		t.Errorf("placeholders %d != args %d", countPlaceholders(query), len(args))
	}
}

func TestBuildQueryArgsMatchPlaceholders(t *testing.T) {
	now := time.Now()
	f := Filters{
		Q:           "arsenal",
		Leagues:     []string{"1", "2"},
		Teams:       []string{"10"},
		Categories:  []string{"Highlights"},
		Locations:   []string{"5"},
		MatchStatus: "live",
		Date:        "2026-08-01",
		Page:        2,
		Limit:       10,
	}

	for _, mode := range []TextMode{ModeNatural, ModeBoolean} {
		query, args := BuildQuery(f, mode, now)
		if got, want := countPlaceholders(query), len(args); got != want {
			t.Errorf("mode %d: placeholders %d != args %d", mode, got, want)
		}
	}
}

func TestBuildQueryBooleanMode(t *testing.T) {
	query, args := BuildQuery(Filters{Q: "arsen", Page: 1, Limit: 20}, ModeBoolean, time.Now())

	if !strings.Contains(query, "IN BOOLEAN MODE") {
		t.Error("boolean mode missing from query")
	}
	if args[0] != "arsen*" {
		t.Errorf("boolean term = %v, want suffix wildcard", args[0])
	}
	// 球队LIKE用原始词，不带通配
	if args[2] != "arsen" {
		t.Errorf("team LIKE term = %v, want raw query", args[2])
	}
}

func TestBuildQueryNaturalMode(t *testing.T) {
	query, args := BuildQuery(Filters{Q: "arsenal", Page: 1, Limit: 20}, ModeNatural, time.Now())

	if !strings.Contains(query, "IN NATURAL LANGUAGE MODE") {
		t.Error("natural language mode missing from query")
	}
	if args[0] != "arsenal" {
		t.Errorf("natural term = %v, want raw query", args[0])
	}
}

func TestBuildQueryTeamsBothSides(t *testing.T) {
	query, args := BuildQuery(Filters{Teams: []string{"7", "8"}, Page: 1, Limit: 20}, ModeNatural, time.Now())

	if !strings.Contains(query, "m.home_team_id IN (?,?)") || !strings.Contains(query, "m.away_team_id IN (?,?)") {
		t.Errorf("team predicate missing both sides: %s", query)
	}
	// 两个id各出现两次 + limit/offset
	if len(args) != 6 {
		t.Errorf("args = %v, want teams doubled plus pagination", args)
	}
}

func TestBuildQueryMatchStatusWindows(t *testing.T) {
	now := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)

	query, args := BuildQuery(Filters{MatchStatus: "upcoming", Page: 1, Limit: 20}, ModeNatural, now)
	if !strings.Contains(query, "m.date > ?") || args[0] != now {
		t.Errorf("upcoming window wrong: %s %v", query, args)
	}

	query, args = BuildQuery(Filters{MatchStatus: "live", Page: 1, Limit: 20}, ModeNatural, now)
	if !strings.Contains(query, "m.date BETWEEN ? AND ?") {
		t.Errorf("live window wrong: %s", query)
	}
	if args[0] != now.Add(-2*time.Hour) || args[1] != now {
		t.Errorf("live window args = %v", args)
	}

	query, args = BuildQuery(Filters{MatchStatus: "finished", Page: 1, Limit: 20}, ModeNatural, now)
	if !strings.Contains(query, "m.date < ?") || args[0] != now.Add(-2*time.Hour) {
		t.Errorf("finished window wrong: %s %v", query, args)
	}
}

func TestBuildQueryPagination(t *testing.T) {
	_, args := BuildQuery(Filters{Page: 3, Limit: 15}, ModeNatural, time.Now())

	limit := args[len(args)-2]
	offset := args[len(args)-1]
	if limit != 15 || offset != 30 {
		t.Errorf("pagination = limit %v offset %v, want 15/30", limit, offset)
	}
}

func TestBuildAutosuggestQuery(t *testing.T) {
	query, args := BuildAutosuggestQuery("ars")

	for _, want := range []string{"FROM teams", "FROM leagues", "FROM countries", "UNION", "ORDER BY tier"} {
		if !strings.Contains(query, want) {
			t.Errorf("autosuggest query missing %q", want)
		}
	}
	if got, want := countPlaceholders(query), len(args); got != want {
		t.Errorf("placeholders %d != args %d", got, want)
	}
	if args[len(args)-1] != 10 {
		t.Errorf("autosuggest limit = %v, want 10", args[len(args)-1])
	}
}
