package models

// Storage bounds for record fields and table keys. A value reaching the bound is cut to bound-1 bytes.
const (
	MaxLine       = 4096
	MaxHost       = 256
	MaxURL        = 4096
	MaxURLKey     = 512
	MaxRef        = 1024
	MaxRefKey     = 256
	MaxAgent      = 128
	MaxSearch     = 256
	MaxSearchKey  = 128
	MaxIdent      = 64
	MaxDateTime   = 28
	MaxHashBucket = 4096
)

// LogRecord is one parsed log line. It is created by a parser, rewritten in place by the
// normalizer and consumed by the aggregation service.
type LogRecord struct {
	Hostname  string
	DateTime  string // CLF style: [dd/Mon/yyyy:hh:mm:ss -0000]
	URL       string // request line while parsing, path after normalization
	RespCode  int
	XferSize  uint64
	Referrer  string
	Agent     string
	SearchStr string
	Ident     string
}

// Truncate cuts s so that it fits a buffer of size bound, reporting whether it was cut.
func Truncate(s string, bound int) (string, bool) {
	if len(s) < bound {
		return s, false
	}
	return s[:bound-1], true
}
