package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProjectInput struct {
	Title           *string  `json:"title"`
	Tagline         *string  `json:"tagline"`
	Description     *string  `json:"description"`
	LongDescription *string  `json:"longDescription"`
	Tech            []string `json:"tech"`
	Features        []string `json:"features"`
	DemoURL         *string  `json:"demoUrl"`
	GithubURL       *string  `json:"githubUrl"`
	ImageURL        *string  `json:"imageUrl"`
	VideoURL        *string  `json:"videoUrl"`
	Year            *int     `json:"year"`
	Category        *string  `json:"category"`
	Status          *string  `json:"status"`
	Featured        *bool    `json:"featured"`
	Visible         *bool    `json:"visible"`
}

type SkillInput struct {
	Name              *string  `json:"name"`
	Category          *string  `json:"category"`
	Level             *int     `json:"level"`
	Icon              *string  `json:"icon"`
	YearsOfExperience *float64 `json:"yearsOfExperience"`
	Projects          []string `json:"projects"`
	Order             *int     `json:"order"`
	Visible           *bool    `json:"visible"`
}

type CertificateInput struct {
	Name         *string `json:"name"`
	Issuer       *string `json:"issuer"`
	Date         *string `json:"date"`
	Description  *string `json:"description"`
	CredentialID *string `json:"credentialId"`
	VerifyURL    *string `json:"verifyUrl"`
	ImageURL     *string `json:"imageUrl"`
	Status       *string `json:"status"`
	Category     *string `json:"category"`
	Priority     *int    `json:"priority"`
	Visible      *bool   `json:"visible"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type AuditActor struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	IP       string `json:"ip,omitempty"`
}

type AuditEntry struct {
	Action     string     `json:"action"`
	OccurredAt string     `json:"occurred_at"`
	Actor      AuditActor `json:"actor"`
	Status     string     `json:"status"`
	Resource   string     `json:"resource,omitempty"`
	Before     any        `json:"before,omitempty"`
	After      any        `json:"after,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type AuditQuery struct {
	Action   string
	Username string
	Status   string
	Resource string
	From     string
	To       string
	Page     int
	Limit    int
}
