package model

// ErrorResponse is the body of every non-login failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// LoginFailure mirrors the login endpoint's failure contract.
type LoginFailure struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type AuditListData struct {
	Items []AuditEntry `json:"items"`
	Meta  Meta         `json:"meta"`
}

type DashboardStats struct {
	TotalProjects     int `json:"totalProjects"`
	TotalSkills       int `json:"totalSkills"`
	TotalCertificates int `json:"totalCertificates"`
	UnreadMessages    int `json:"unreadMessages"`
	TotalMessages     int `json:"totalMessages"`
}
