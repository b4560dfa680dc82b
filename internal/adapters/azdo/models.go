package azdo

import "encoding/json"

const (
	agentStatusOnline = "online"
)

type listResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

type agentPool struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type agent struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Enabled         bool            `json:"enabled"`
	Status          string          `json:"status"`
	AssignedRequest json.RawMessage `json:"assignedRequest,omitempty"`
}

func (a agent) online() bool {
	return a.Enabled && a.Status == agentStatusOnline
}

func (a agent) assigned() bool {
	return len(a.AssignedRequest) > 0 && string(a.AssignedRequest) != "null"
}

type jobRequest struct {
	RequestID  int64   `json:"requestId"`
	Result     *string `json:"result"`
	AssignTime *string `json:"assignTime"`
}

func (j jobRequest) waiting() bool {
	return j.Result == nil && j.AssignTime == nil
}
