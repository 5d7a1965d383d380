package repository

import "github.com/jmkadima/facturier-api/internal/domain/entity"

// UtilisateurRepository port de persistance pour Utilisateur.
type UtilisateurRepository interface {
	Create(utilisateur *entity.Utilisateur) error
	GetByID(id string) (*entity.Utilisateur, error)
	GetByEmail(email string) (*entity.Utilisateur, error)
}
