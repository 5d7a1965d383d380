package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LigneApproRequest ligne d'un approvisionnement à créer. Le prix TTC est
// calculé depuis le prix HT et la TVA (celle du produit si absente).
type LigneApproRequest struct {
	ProduitID      string           `json:"produit_id"`
	Quantite       int64            `json:"quantite"`
	PrixUnitaireHT decimal.Decimal  `json:"prix_unitaire_ht"`
	TVA            *decimal.Decimal `json:"tva"`
}

// CreateApproRequest entrée pour créer un approvisionnement (statut en_attente).
type CreateApproRequest struct {
	Fournisseur          string              `json:"fournisseur"`
	ReferenceFournisseur string              `json:"reference_fournisseur"`
	Notes                string              `json:"notes"`
	Lignes               []LigneApproRequest `json:"lignes"`
}

// LigneApproResponse ligne d'un approvisionnement.
type LigneApproResponse struct {
	ID              string          `json:"id"`
	ProduitID       string          `json:"produit_id"`
	Quantite        int64           `json:"quantite"`
	PrixUnitaireHT  decimal.Decimal `json:"prix_unitaire_ht"`
	PrixUnitaireTTC decimal.Decimal `json:"prix_unitaire_ttc"`
	TVA             decimal.Decimal `json:"tva"`
	TotalHT         decimal.Decimal `json:"total_ht"`
	TotalTTC        decimal.Decimal `json:"total_ttc"`
}

// ApproResponse sortie d'un approvisionnement.
type ApproResponse struct {
	ID                   string               `json:"id"`
	Numero               string               `json:"numero"`
	Date                 time.Time            `json:"date"`
	Fournisseur          string               `json:"fournisseur,omitempty"`
	ReferenceFournisseur string               `json:"reference_fournisseur,omitempty"`
	Statut               string               `json:"statut"`
	TotalHT              decimal.Decimal      `json:"total_ht"`
	TotalTTC             decimal.Decimal      `json:"total_ttc"`
	Notes                string               `json:"notes,omitempty"`
	Lignes               []LigneApproResponse `json:"lignes,omitempty"`
}

// ApproListResponse liste paginée d'approvisionnements.
type ApproListResponse struct {
	Items []ApproResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
