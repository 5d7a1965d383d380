package entity

import (
	"strings"
	"time"
)

// Types de client.
const (
	ClientPersonne   = "person"
	ClientEntreprise = "company"
)

// Client représente un client facturable (personne physique ou entreprise).
type Client struct {
	ID           string
	TypeClient   string // person, company
	Nom          string
	Prenom       string // personnes uniquement
	Quartier     string
	Avenue       string
	Numero       string
	NIF          string
	Telephone    string
	Email        string
	DateCreation time.Time
}

// DisplayName renvoie "Nom Prénom" pour une personne, le nom seul pour une entreprise.
func (c *Client) DisplayName() string {
	if c.TypeClient == ClientPersonne {
		return strings.TrimSpace(c.Nom + " " + c.Prenom)
	}
	return c.Nom
}
