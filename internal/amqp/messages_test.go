package amqp

import (
	"testing"

	"finreports/internal/reports"
)

func TestReportRequestRoundTrip(t *testing.T) {
	topN := 5
	req := NewReportRequest(reports.TypeCategoryAnalysis, reports.Params{
		Filter: &reports.Filter{Categories: []string{"Groceries"}},
		TopN:   topN,
	})
	if req.ID == "" {
		t.Fatal("request should get a generated ID")
	}

	body, err := req.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReportRequestFromJSON(body)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != req.ID || got.Type != string(reports.TypeCategoryAnalysis) {
		t.Errorf("round trip: %+v", got)
	}
	if got.Params.TopN != topN || got.Params.Filter == nil || len(got.Params.Filter.Categories) != 1 {
		t.Errorf("params round trip: %+v", got.Params)
	}
}

func TestReportRequestIDsUnique(t *testing.T) {
	a := NewReportRequest(reports.TypeCashFlow, reports.Params{})
	b := NewReportRequest(reports.TypeCashFlow, reports.Params{})
	if a.ID == b.ID {
		t.Fatal("request IDs must be unique")
	}
}

func TestReportRequestFromJSONInvalid(t *testing.T) {
	if _, err := ReportRequestFromJSON([]byte("{bad json")); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestReportResultRoundTrip(t *testing.T) {
	res := &ReportResult{
		ID:       "job-1",
		Type:     string(reports.TypeProfitLoss),
		Document: map[string]any{"net_income": 50.0},
	}
	body, err := res.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReportResultFromJSON(body)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "job-1" || got.Document["net_income"] != 50.0 {
		t.Errorf("round trip: %+v", got)
	}
	if got.Error != "" {
		t.Errorf("error should be empty: %q", got.Error)
	}
}
