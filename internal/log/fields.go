package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldReportType = "report_type"
	FieldGrouping   = "grouping"
	FieldJobID      = "job_id"
	FieldBackend    = "backend"
	FieldTxCount    = "transaction_count"
	FieldSkipped    = "skipped_records"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentEngine  = "engine"
	ComponentSource  = "source"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentStorage = "storage"
	ComponentCLI     = "cli"
)
