package entity

import "time"

// UniteMesure représente une unité de mesure (pièce, kg, litre...).
type UniteMesure struct {
	ID           string
	Nom          string // unique
	Symbole      string
	Description  string
	DateCreation time.Time
}
