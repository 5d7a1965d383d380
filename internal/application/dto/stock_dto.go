package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnregistrerMouvementRequest body pour POST /api/stock/mouvements.
// Quantite est une magnitude non négative pour entree/sortie ; pour un
// ajustement c'est la nouvelle valeur absolue du stock.
type EnregistrerMouvementRequest struct {
	ProduitID   string `json:"produit_id"`
	Type        string `json:"type"` // entree, sortie, ajustement
	Quantite    int64  `json:"quantite"`
	Commentaire string `json:"commentaire"`
}

// MouvementView vue d'un mouvement de stock.
type MouvementView struct {
	ID            string    `json:"id"`
	ProduitID     string    `json:"produit_id"`
	Type          string    `json:"type"`
	Quantite      int64     `json:"quantite"`
	StockAvant    int64     `json:"stock_avant"`
	StockApres    int64     `json:"stock_apres"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Commentaire   string    `json:"commentaire,omitempty"`
	Utilisateur   string    `json:"utilisateur,omitempty"`
	Date          time.Time `json:"date"`
}

// HistoriqueResponse historique des mouvements d'un produit, plus récent en premier.
type HistoriqueResponse struct {
	ProduitID   string          `json:"produit_id"`
	ProduitNom  string          `json:"produit_nom"`
	StockActuel int64           `json:"stock_actuel"`
	Mouvements  []MouvementView `json:"mouvements"`
}

// StockProduitView ligne de l'état du stock.
type StockProduitView struct {
	ProduitID    string          `json:"produit_id"`
	Nom          string          `json:"nom"`
	Code         string          `json:"code"`
	StockActuel  int64           `json:"stock_actuel"`
	StockMinimum int64           `json:"stock_minimum"`
	ValeurStock  decimal.Decimal `json:"valeur_stock"`
	SousMinimum  bool            `json:"sous_minimum"`
}
