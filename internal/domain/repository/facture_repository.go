package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmkadima/facturier-api/internal/domain/entity"
)

// FiltresFacture critères de filtrage pour la liste des factures.
type FiltresFacture struct {
	Recherche    string // numéro de facture ou nom/prénom du client
	TypeDocument string // facture, avoir, vide = tous
	Etat         string
	Paiement     string
	DateDebut    *time.Time
	DateFin      *time.Time
}

// StatsFactures agrégats affichés en tête de liste.
type StatsFactures struct {
	TotalFacture decimal.Decimal
	TotalAvoir   decimal.Decimal
	TotalImpaye  decimal.Decimal
	NbFactures   int
	NbAvoirs     int
	NbImpayes    int
}

// FactureRepository port de persistance pour Facture et ses lignes.
type FactureRepository interface {
	Create(facture *entity.Facture) error
	CreateLigne(ligne *entity.LigneFacture) error
	GetByID(id string) (*entity.Facture, error)
	GetLignes(factureID string) ([]*entity.LigneFacture, error)
	Update(facture *entity.Facture) error
	// DeleteLignes supprime toutes les lignes (remplacement lors d'une édition).
	DeleteLignes(factureID string) error
	List(filtres FiltresFacture, limit, offset int) ([]*entity.Facture, error)
	Count(filtres FiltresFacture) (int, error)
	Stats() (*StatsFactures, error)
	// DernierNumero renvoie le plus grand numéro existant pour un préfixe
	// ("F", "A", ...), vide si aucun.
	DernierNumero(prefixe string) (string, error)
	ListByClientEtPeriode(clientID, typeDocument string, debut, fin time.Time) ([]*entity.Facture, error)
	ListByPeriode(typeDocument string, debut, fin time.Time) ([]*entity.Facture, error)
	HasLignesForProduit(produitID string) (bool, error)
}
