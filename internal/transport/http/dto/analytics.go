package dto

type PageviewRequest struct {
	SessionID string `json:"sessionId" validate:"required,max=128"`
	URL       string `json:"url" validate:"required,url"`
	Title     string `json:"title,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
}

type EventRequest struct {
	SessionID string         `json:"sessionId" validate:"required,max=128"`
	Name      string         `json:"name" validate:"required,max=100"`
	Category  string         `json:"category,omitempty"`
	Label     string         `json:"label,omitempty"`
	Value     float64        `json:"value,omitempty"`
	URL       string         `json:"url,omitempty" validate:"omitempty,url"`
	Props     map[string]any `json:"props,omitempty"`
}
