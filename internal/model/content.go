package model

import "time"

var (
	ProjectCategories   = []string{"web", "mobile", "ai", "desktop", "other"}
	ProjectStatuses     = []string{"completed", "in-progress", "planned"}
	SkillCategories     = []string{"Programming", "Frontend", "Backend", "Database", "Tools", "Other"}
	CertificateStatuses = []string{"active", "inactive", "expired"}
	MessageStatuses     = []string{"unread", "read", "archived"}
)

const (
	MessageUnread   = "unread"
	MessageRead     = "read"
	MessageArchived = "archived"
)

type Project struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Tagline         string    `json:"tagline"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription,omitempty"`
	Tech            []string  `json:"tech"`
	Features        []string  `json:"features"`
	DemoURL         string    `json:"demoUrl,omitempty"`
	GithubURL       string    `json:"githubUrl,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	VideoURL        string    `json:"videoUrl,omitempty"`
	Year            int       `json:"year"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	Featured        bool      `json:"featured"`
	Visible         bool      `json:"visible"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Skill struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Level             int       `json:"level"`
	Icon              string    `json:"icon,omitempty"`
	YearsOfExperience *float64  `json:"yearsOfExperience,omitempty"`
	Projects          []string  `json:"projects"`
	Order             int       `json:"order"`
	Visible           bool      `json:"visible"`
	CreatedAt         time.Time `json:"createdAt"`
}

type Certificate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Issuer       string    `json:"issuer"`
	Date         string    `json:"date"`
	Description  string    `json:"description,omitempty"`
	CredentialID string    `json:"credentialId,omitempty"`
	VerifyURL    string    `json:"verifyUrl,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Status       string    `json:"status"`
	Category     string    `json:"category,omitempty"`
	Priority     int       `json:"priority"`
	Visible      bool      `json:"visible"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListFilter narrows content listings. VisibleOnly is set for public reads.
type ListFilter struct {
	VisibleOnly bool
}
