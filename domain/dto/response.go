package dto

// Res is the generic response envelope used by auth endpoints and middleware.
type Res struct {
	ResponseCode    string      `json:"response_code"`
	ResponseMessage string      `json:"response_message"`
	Data            interface{} `json:"data,omitempty"`
}

// SyncStats is the terminal result of one content sync invocation.
// ThreadFetchFailures counts top-level posts whose reply fetch failed and was
// skipped; those replies are not included in RepliesSynced.
type SyncStats struct {
	PostsSynced             int `json:"postsSynced"`
	RepliesSynced           int `json:"repliesSynced"`
	StandaloneRepliesSynced int `json:"standaloneRepliesSynced"`
	ThreadFetchFailures     int `json:"threadFetchFailures,omitempty"`
}
