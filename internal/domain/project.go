package domain

import "time"

// Project groups the questions and visited URLs of one research effort.
type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
