package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de document de facturation.
const (
	DocumentFacture = "facture"
	DocumentAvoir   = "avoir"
)

// États d'une facture.
const (
	EtatEnAttente = "En attente"
	EtatPayee     = "Payée"
)

// Facture représente une facture ou un avoir (note de crédit).
// Total est calculé et stocké à la sauvegarde : somme des TotalTTC des lignes.
// Un avoir porte FactureOriginaleID et des lignes à quantités négatives.
type Facture struct {
	ID                 string
	Numero             string // unique : F0001..., A0001...
	TypeDocument       string // facture, avoir
	ClientID           string
	FactureOriginaleID string // avoirs uniquement
	Date               time.Time
	Total              decimal.Decimal
	Paiement           string // espèces, virement, chèque...
	Etat               string // En attente, Payée
	Notes              string
	DateCreation       time.Time
}

// LigneFacture ligne d'une facture. Quantite est signée : négative sur un avoir.
type LigneFacture struct {
	ID           string
	FactureID    string
	ProduitID    string
	Quantite     int64
	PrixUnitaire decimal.Decimal
	TVA          decimal.Decimal // pourcentage
}

// TotalHT renvoie quantité × prix unitaire.
func (l *LigneFacture) TotalHT() decimal.Decimal {
	return decimal.NewFromInt(l.Quantite).Mul(l.PrixUnitaire)
}

// TotalTTC renvoie le total HT majoré de la TVA.
func (l *LigneFacture) TotalTTC() decimal.Decimal {
	facteur := decimal.NewFromInt(1).Add(l.TVA.Div(decimal.NewFromInt(100)))
	return l.TotalHT().Mul(facteur)
}
