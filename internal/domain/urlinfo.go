package domain

import "time"

// URLInfo is a visited web page, unique per (ProjectID, URL). The URL string
// is matched exactly; no normalization is applied.
type URLInfo struct {
	ID        string
	URL       string
	Title     string
	ProjectID string
	CreatedAt time.Time
}

// DisplayTitle returns the title, falling back to the URL itself.
func (u *URLInfo) DisplayTitle() string {
	if u.Title != "" {
		return u.Title
	}
	return u.URL
}
