package catalogue

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

// UniteMesureUseCase CRUD des unités de mesure.
type UniteMesureUseCase struct {
	repo repository.UniteMesureRepository
}

// NewUniteMesureUseCase construit le cas d'usage.
func NewUniteMesureUseCase(repo repository.UniteMesureRepository) *UniteMesureUseCase {
	return &UniteMesureUseCase{repo: repo}
}

// Create crée une unité de mesure ; nom déjà pris = ErrDuplicate.
func (uc *UniteMesureUseCase) Create(in dto.CreateUniteMesureRequest) (*dto.UniteMesureResponse, error) {
	if in.Nom == "" {
		return nil, domain.ErrInvalidInput
	}
	unite := &entity.UniteMesure{
		ID:           uuid.New().String(),
		Nom:          in.Nom,
		Symbole:      in.Symbole,
		Description:  in.Description,
		DateCreation: time.Now(),
	}
	if err := uc.repo.Create(unite); err != nil {
		return nil, err
	}
	return toUniteResponse(unite), nil
}

// List renvoie toutes les unités de mesure.
func (uc *UniteMesureUseCase) List() ([]dto.UniteMesureResponse, error) {
	unites, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UniteMesureResponse, 0, len(unites))
	for _, u := range unites {
		out = append(out, *toUniteResponse(u))
	}
	return out, nil
}

// Update met à jour les champs de l'unité.
func (uc *UniteMesureUseCase) Update(id string, in dto.CreateUniteMesureRequest) (*dto.UniteMesureResponse, error) {
	unite, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unite == nil {
		return nil, nil
	}
	if in.Nom != "" {
		unite.Nom = in.Nom
	}
	unite.Symbole = in.Symbole
	unite.Description = in.Description
	if err := uc.repo.Update(unite); err != nil {
		return nil, err
	}
	return toUniteResponse(unite), nil
}

// Delete supprime une unité sans produits ; ErrConflict sinon.
func (uc *UniteMesureUseCase) Delete(id string) error {
	unite, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if unite == nil {
		return domain.ErrNotFound
	}
	used, err := uc.repo.HasProduits(id)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toUniteResponse(u *entity.UniteMesure) *dto.UniteMesureResponse {
	return &dto.UniteMesureResponse{
		ID:           u.ID,
		Nom:          u.Nom,
		Symbole:      u.Symbole,
		Description:  u.Description,
		DateCreation: u.DateCreation,
	}
}
