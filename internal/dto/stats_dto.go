package dto

type StatsResponse struct {
	Conversations        int64  `json:"conversations"`
	Projects             int64  `json:"projects"`
	Users                int64  `json:"users"`
	Imports              int64  `json:"imports"`
	EarliestConversation string `json:"earliest_conversation,omitempty"`
	LatestConversation   string `json:"latest_conversation,omitempty"`
}

type AccountsResponse struct {
	Accounts []string `json:"accounts"`
}
