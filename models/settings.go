package models

// SiteSettings holds the owner profile shown across the site
type SiteSettings struct {
	SiteName     string `json:"siteName"`
	OwnerName    string `json:"ownerName"`
	OwnerTitle   string `json:"ownerTitle"`
	AboutShort   string `json:"aboutShort"`
	ContactEmail string `json:"contactEmail"`
	LinkedinURL  string `json:"linkedinUrl"`
	GithubURL    string `json:"githubUrl"`
}

// DefaultSiteSettings is returned until settings are saved for the first time.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:     "BA Portfolio",
		OwnerName:    "Portfolio Owner",
		OwnerTitle:   "Business Analyst",
		AboutShort:   "Business analyst with more than five years of experience in fintech and banking.",
		ContactEmail: "example@mail.com",
		LinkedinURL:  "https://linkedin.com",
		GithubURL:    "https://github.com",
	}
}

// ContactRequest is a message submitted through the contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
