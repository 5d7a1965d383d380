package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProduitRequest entrée pour créer un produit. Les champs de stock ne
// sont pris en compte que si Stockable est vrai ; QuantiteInitiale alimente le
// mouvement de stock initial.
type CreateProduitRequest struct {
	Nom              string          `json:"nom"`
	Code             string          `json:"code"` // vide = suggéré depuis le nom
	CategorieID      string          `json:"categorie_id"`
	UniteMesureID    string          `json:"unite_mesure_id"`
	TVA              decimal.Decimal `json:"tva"`
	TC               bool            `json:"tc"`
	PF               bool            `json:"pf"`
	Stockable        bool            `json:"stockable"`
	PVTTC            decimal.Decimal `json:"pv_ttc"`
	PRU              decimal.Decimal `json:"pru"`
	QuantiteInitiale int64           `json:"quantite_initiale"`
	StockMinimum     int64           `json:"stock_minimum"`
}

// UpdateProduitRequest entrée pour mettre à jour un produit. Le stock actuel
// n'est pas éditable : il ne bouge que par le grand livre.
type UpdateProduitRequest struct {
	Nom           *string          `json:"nom"`
	Code          *string          `json:"code"`
	CategorieID   *string          `json:"categorie_id"`
	UniteMesureID *string          `json:"unite_mesure_id"`
	TVA           *decimal.Decimal `json:"tva"`
	TC            *bool            `json:"tc"`
	PF            *bool            `json:"pf"`
	PVTTC         *decimal.Decimal `json:"pv_ttc"`
	PRU           *decimal.Decimal `json:"pru"`
	StockMinimum  *int64           `json:"stock_minimum"`
}

// ProduitResponse sortie d'un produit.
type ProduitResponse struct {
	ID            string          `json:"id"`
	Nom           string          `json:"nom"`
	Code          string          `json:"code"`
	CategorieID   string          `json:"categorie_id"`
	UniteMesureID string          `json:"unite_mesure_id"`
	TVA           decimal.Decimal `json:"tva"`
	TC            bool            `json:"tc"`
	PF            bool            `json:"pf"`
	Stockable     bool            `json:"stockable"`
	PVTTC         decimal.Decimal `json:"pv_ttc"`
	PRU           decimal.Decimal `json:"pru"`
	StockActuel   int64           `json:"stock_actuel"`
	StockMinimum  int64           `json:"stock_minimum"`
	ValeurStock   decimal.Decimal `json:"valeur_stock"`
	DateCreation  time.Time       `json:"date_creation"`
}

// ProduitListResponse liste paginée de produits.
type ProduitListResponse struct {
	Items []ProduitResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CheckCodeResponse disponibilité d'un code produit et suggestion.
type CheckCodeResponse struct {
	Code       string `json:"code"`
	Disponible bool   `json:"disponible"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CreateCategorieRequest entrée pour créer une catégorie.
type CreateCategorieRequest struct {
	Nom         string `json:"nom"`
	Description string `json:"description"`
}

// CategorieResponse sortie d'une catégorie.
type CategorieResponse struct {
	ID           string    `json:"id"`
	Nom          string    `json:"nom"`
	Description  string    `json:"description"`
	DateCreation time.Time `json:"date_creation"`
}

// CreateUniteMesureRequest entrée pour créer une unité de mesure.
type CreateUniteMesureRequest struct {
	Nom         string `json:"nom"`
	Symbole     string `json:"symbole"`
	Description string `json:"description"`
}

// UniteMesureResponse sortie d'une unité de mesure.
type UniteMesureResponse struct {
	ID           string    `json:"id"`
	Nom          string    `json:"nom"`
	Symbole      string    `json:"symbole"`
	Description  string    `json:"description"`
	DateCreation time.Time `json:"date_creation"`
}
