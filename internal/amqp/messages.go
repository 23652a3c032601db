package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"finreports/internal/reports"
)

// ReportRequest asks the worker to generate one report. The ID ties the
// request to its eventual result.
type ReportRequest struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Params      reports.Params `json:"params"`
	RequestedAt time.Time      `json:"requested_at"`
}

// NewReportRequest creates a request with a fresh ID.
func NewReportRequest(t reports.ReportType, p reports.Params) *ReportRequest {
	return &ReportRequest{
		ID:          uuid.NewString(),
		Type:        string(t),
		Params:      p,
		RequestedAt: time.Now().UTC(),
	}
}

// ToJSON converts the request to JSON bytes
func (m *ReportRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportRequestFromJSON creates a request from JSON bytes
func ReportRequestFromJSON(data []byte) (*ReportRequest, error) {
	var msg ReportRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ReportResult carries a generated report document back to the requester.
// Error is set instead of Document when generation failed.
type ReportResult struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	GeneratedAt time.Time      `json:"generated_at"`
	Document    map[string]any `json:"document,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// ToJSON converts the result to JSON bytes
func (m *ReportResult) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportResultFromJSON creates a result from JSON bytes
func ReportResultFromJSON(data []byte) (*ReportResult, error) {
	var msg ReportResult
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
