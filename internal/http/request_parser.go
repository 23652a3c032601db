package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finreports/internal/reports"
)

// ParseReportParams builds report parameters from a query string. List
// parameters are comma-separated; dates use YYYY-MM-DD. Malformed dates and
// numbers are caller errors and reported, not silently dropped.
//
// Recognized parameters: start_date, end_date, categories,
// exclude_categories, merchants, exclude_merchants, accounts, min_amount,
// max_amount, description_contains, notes_contains, grouping, top_n,
// group_by, sort_by, sort_order.
func ParseReportParams(query url.Values) (reports.Params, error) {
	var params reports.Params
	f := &reports.Filter{}

	if v := strings.TrimSpace(query.Get("start_date")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", v)
		}
		f.StartDate = d
	}
	if v := strings.TrimSpace(query.Get("end_date")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", v)
		}
		f.EndDate = d
	}

	f.Categories = splitList(query.Get("categories"))
	f.ExcludeCategories = splitList(query.Get("exclude_categories"))
	f.Merchants = splitList(query.Get("merchants"))
	f.ExcludeMerchants = splitList(query.Get("exclude_merchants"))
	f.Accounts = splitList(query.Get("accounts"))

	if v := strings.TrimSpace(query.Get("min_amount")); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("invalid min_amount %q: expected a number", v)
		}
		f.MinAmount = &a
	}
	if v := strings.TrimSpace(query.Get("max_amount")); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, fmt.Errorf("invalid max_amount %q: expected a number", v)
		}
		f.MaxAmount = &a
	}

	// Presence matters for the contains filters: an empty value still
	// requires the field to be non-empty.
	if query.Has("description_contains") {
		v := query.Get("description_contains")
		f.DescriptionContains = &v
	}
	if query.Has("notes_contains") {
		v := query.Get("notes_contains")
		f.NotesContains = &v
	}

	params.Filter = f
	params.Grouping = reports.ParseGrouping(query.Get("grouping"))

	if v := strings.TrimSpace(query.Get("top_n")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, fmt.Errorf("invalid top_n %q: expected an integer", v)
		}
		params.TopN = n
	}

	params.GroupBy = strings.TrimSpace(query.Get("group_by"))

	if v := strings.TrimSpace(query.Get("sort_by")); v != "" {
		params.Sort = &reports.Sort{
			Field: v,
			Order: reports.ParseSortOrder(query.Get("sort_order")),
		}
	}

	return params, nil
}

// splitList parses a comma-separated query value, dropping empty entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
