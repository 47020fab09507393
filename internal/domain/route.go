package domain

// PendingRoute is a navigation target awaiting explicit user confirmation.
// At most one exists per conversation; a newly detected intent replaces it.
type PendingRoute struct {
	Destination  string `json:"destination"`
	Title        string `json:"title"`
	Prompt       string `json:"prompt"`
	RequiresAuth bool   `json:"requires_auth"`
}
