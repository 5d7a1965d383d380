package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'un approvisionnement. en_attente est l'état initial ;
// recu et annule sont terminaux.
const (
	StatutEnAttente = "en_attente"
	StatutRecu      = "recu"
	StatutAnnule    = "annule"
)

// Approvisionnement commande fournisseur. La réception (statut recu) émet une
// entrée de stock par ligne ; l'annulation n'est permise que depuis en_attente.
type Approvisionnement struct {
	ID                    string
	Numero                string // unique : APP0001...
	DateApprovisionnement time.Time
	Fournisseur           string
	ReferenceFournisseur  string
	Statut                string // en_attente, recu, annule
	TotalHT               decimal.Decimal
	TotalTTC              decimal.Decimal
	Notes                 string
	DateCreation          time.Time
}

// LigneApprovisionnement ligne d'un approvisionnement.
type LigneApprovisionnement struct {
	ID                  string
	ApprovisionnementID string
	ProduitID           string
	Quantite            int64
	PrixUnitaireHT      decimal.Decimal
	PrixUnitaireTTC     decimal.Decimal
	TVA                 decimal.Decimal // pourcentage
}

// TotalHT renvoie quantité × prix unitaire HT.
func (l *LigneApprovisionnement) TotalHT() decimal.Decimal {
	return decimal.NewFromInt(l.Quantite).Mul(l.PrixUnitaireHT)
}

// TotalTTC renvoie quantité × prix unitaire TTC.
func (l *LigneApprovisionnement) TotalTTC() decimal.Decimal {
	return decimal.NewFromInt(l.Quantite).Mul(l.PrixUnitaireTTC)
}
