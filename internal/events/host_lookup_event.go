package events

// HostLookupEvent asks a resolver worker for the name of one numeric address.
//
// Example JSON:
//
//	{
//	  "runId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "address": "192.0.2.10",
//	  "record": 1532
//	}
//
// Record is the number of the log line where the address was first seen. It only serves
// diagnostics.
type HostLookupEvent struct {
	RunID   string `json:"runId"`
	Address string `json:"address"`
	Record  uint64 `json:"record"`
}
