package dto

import "time"

// LoginRequest identifiants de connexion.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UtilisateurResponse sortie d'un utilisateur (sans hash).
type UtilisateurResponse struct {
	ID           string    `json:"id"`
	Nom          string    `json:"nom"`
	Email        string    `json:"email"`
	DateCreation time.Time `json:"date_creation"`
}

// LoginResponse token + utilisateur connecté.
type LoginResponse struct {
	Token       string              `json:"token"`
	Utilisateur UtilisateurResponse `json:"utilisateur"`
}
