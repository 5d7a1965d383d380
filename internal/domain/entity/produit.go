package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produit représente un article du catalogue.
// StockActuel est un état dérivé : seul le grand livre de stock (application/stock)
// l'écrit, toujours en même temps qu'un MouvementStock. Il doit rester égal au
// rejeu de l'historique des mouvements.
type Produit struct {
	ID            string
	Nom           string
	Code          string // unique, peut être suggéré depuis le nom
	CategorieID   string
	UniteMesureID string
	TVA           decimal.Decimal // pourcentage : 0, 5.5, 10, 20
	TC            bool            // taxe communale
	PF            bool            // prélèvement forfaitaire
	Stockable     bool
	PVTTC         decimal.Decimal // prix de vente TTC
	PRU           decimal.Decimal // prix de revient unitaire
	StockActuel   int64
	StockMinimum  int64 // seuil d'alerte
	DateCreation  time.Time
}

// ValeurStock renvoie la valeur du stock au prix de vente TTC.
func (p *Produit) ValeurStock() decimal.Decimal {
	return decimal.NewFromInt(p.StockActuel).Mul(p.PVTTC)
}

// SousStockMinimum indique si le produit est passé sous son seuil d'alerte.
func (p *Produit) SousStockMinimum() bool {
	return p.Stockable && p.StockActuel < p.StockMinimum
}
