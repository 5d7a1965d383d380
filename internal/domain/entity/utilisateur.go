package entity

import "time"

// Utilisateur compte applicatif (organisation unique, pas de multi-tenant).
type Utilisateur struct {
	ID           string
	Nom          string
	Email        string // unique
	PasswordHash string
	DateCreation time.Time
}
