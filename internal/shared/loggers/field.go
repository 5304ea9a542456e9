package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldRecordNumber = "record"
	FieldRawLine      = "raw_line"
	FieldLogFile      = "log_file"
	FieldTable        = "table"
	FieldHost         = "host"
	FieldWorkerId     = "worker_id"
	FieldName         = "field"
)
