package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest entrée pour créer un client.
type CreateClientRequest struct {
	TypeClient string `json:"type_client"` // person, company
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Quartier   string `json:"quartier"`
	Avenue     string `json:"avenue"`
	Numero     string `json:"numero"`
	NIF        string `json:"nif"`
	Telephone  string `json:"telephone"`
	Email      string `json:"email"`
}

// UpdateClientRequest entrée pour mettre à jour un client.
type UpdateClientRequest struct {
	TypeClient *string `json:"type_client"`
	Nom        *string `json:"nom"`
	Prenom     *string `json:"prenom"`
	Quartier   *string `json:"quartier"`
	Avenue     *string `json:"avenue"`
	Numero     *string `json:"numero"`
	NIF        *string `json:"nif"`
	Telephone  *string `json:"telephone"`
	Email      *string `json:"email"`
}

// ClientResponse sortie d'un client.
type ClientResponse struct {
	ID           string    `json:"id"`
	TypeClient   string    `json:"type_client"`
	Nom          string    `json:"nom"`
	Prenom       string    `json:"prenom,omitempty"`
	DisplayName  string    `json:"display_name"`
	Quartier     string    `json:"quartier,omitempty"`
	Avenue       string    `json:"avenue,omitempty"`
	Numero       string    `json:"numero,omitempty"`
	NIF          string    `json:"nif,omitempty"`
	Telephone    string    `json:"telephone,omitempty"`
	Email        string    `json:"email,omitempty"`
	DateCreation time.Time `json:"date_creation"`
}

// ClientListResponse liste paginée de clients.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// LigneFactureRequest ligne d'une facture à créer. PrixUnitaire à zéro =
// prix de vente TTC du produit.
type LigneFactureRequest struct {
	ProduitID    string           `json:"produit_id"`
	Quantite     int64            `json:"quantite"`
	PrixUnitaire decimal.Decimal  `json:"prix_unitaire"`
	TVA          *decimal.Decimal `json:"tva"` // nil = TVA du produit
}

// CreateFactureRequest entrée pour créer une facture ou un avoir.
type CreateFactureRequest struct {
	TypeDocument string                `json:"type_document"` // facture (défaut), avoir
	ClientID     string                `json:"client_id"`
	Numero       string                `json:"numero"` // vide = généré (F0001.../A0001...)
	Paiement     string                `json:"paiement"`
	Etat         string                `json:"etat"` // défaut : En attente
	Notes        string                `json:"notes"`
	Lignes       []LigneFactureRequest `json:"lignes"`
}

// UpdateFactureRequest entrée pour éditer une facture : les lignes fournies
// remplacent les anciennes et le total est recalculé.
type UpdateFactureRequest struct {
	Paiement *string               `json:"paiement"`
	Etat     *string               `json:"etat"`
	Notes    *string               `json:"notes"`
	Lignes   []LigneFactureRequest `json:"lignes"`
}

// LigneFactureResponse ligne d'une facture.
type LigneFactureResponse struct {
	ID           string          `json:"id"`
	ProduitID    string          `json:"produit_id"`
	Quantite     int64           `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	TVA          decimal.Decimal `json:"tva"`
	TotalHT      decimal.Decimal `json:"total_ht"`
	TotalTTC     decimal.Decimal `json:"total_ttc"`
}

// FactureResponse sortie d'une facture.
type FactureResponse struct {
	ID                 string                 `json:"id"`
	Numero             string                 `json:"numero"`
	TypeDocument       string                 `json:"type_document"`
	ClientID           string                 `json:"client_id"`
	FactureOriginaleID string                 `json:"facture_originale_id,omitempty"`
	Date               time.Time              `json:"date"`
	Total              decimal.Decimal        `json:"total"`
	Paiement           string                 `json:"paiement,omitempty"`
	Etat               string                 `json:"etat"`
	Notes              string                 `json:"notes,omitempty"`
	Lignes             []LigneFactureResponse `json:"lignes,omitempty"`
}

// StatsFacturesResponse agrégats affichés avec la liste des factures.
type StatsFacturesResponse struct {
	TotalFacture decimal.Decimal `json:"total_facture"`
	TotalAvoir   decimal.Decimal `json:"total_avoir"`
	TotalNet     decimal.Decimal `json:"total_net"`
	TotalImpaye  decimal.Decimal `json:"total_impaye"`
	NbFactures   int             `json:"nb_factures"`
	NbAvoirs     int             `json:"nb_avoirs"`
	NbImpayes    int             `json:"nb_impayes"`
}

// FactureListResponse liste paginée de factures avec statistiques.
type FactureListResponse struct {
	Items []FactureResponse     `json:"items"`
	Stats StatsFacturesResponse `json:"stats"`
	Page  PageResponse          `json:"page"`
}
