package repository

import "github.com/jmkadima/facturier-api/internal/domain/entity"

// ApprovisionnementRepository port de persistance pour Approvisionnement.
type ApprovisionnementRepository interface {
	Create(appro *entity.Approvisionnement) error
	CreateLigne(ligne *entity.LigneApprovisionnement) error
	GetByID(id string) (*entity.Approvisionnement, error)
	// GetForUpdate lit l'approvisionnement en verrouillant sa ligne
	// (SELECT ... FOR UPDATE), pour garder le garde-fou de statut sous verrou.
	GetForUpdate(id string) (*entity.Approvisionnement, error)
	GetLignes(approID string) ([]*entity.LigneApprovisionnement, error)
	UpdateStatut(id, statut string) error
	List(limit, offset int) ([]*entity.Approvisionnement, error)
	Count() (int, error)
	DernierNumero(prefixe string) (string, error)
}
