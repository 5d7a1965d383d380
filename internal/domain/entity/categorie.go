package entity

import "time"

// Categorie représente une catégorie de produits.
type Categorie struct {
	ID           string
	Nom          string // unique
	Description  string
	DateCreation time.Time
}
