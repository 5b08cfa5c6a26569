package entity

import "time"

// ContactSubmission mensaje recibido desde el formulario de contacto.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Phone     string
	Subject   string
	Message   string
	Status    string // new
	CreatedAt time.Time
}
