package domain

import "time"

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Message   string
	CreatedAt time.Time
}
