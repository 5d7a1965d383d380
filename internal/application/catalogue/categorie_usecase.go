package catalogue

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

// CategorieUseCase CRUD des catégories.
type CategorieUseCase struct {
	repo repository.CategorieRepository
}

// NewCategorieUseCase construit le cas d'usage.
func NewCategorieUseCase(repo repository.CategorieRepository) *CategorieUseCase {
	return &CategorieUseCase{repo: repo}
}

// Create crée une catégorie ; nom déjà pris = ErrDuplicate (contrainte unique).
func (uc *CategorieUseCase) Create(in dto.CreateCategorieRequest) (*dto.CategorieResponse, error) {
	if in.Nom == "" {
		return nil, domain.ErrInvalidInput
	}
	categorie := &entity.Categorie{
		ID:           uuid.New().String(),
		Nom:          in.Nom,
		Description:  in.Description,
		DateCreation: time.Now(),
	}
	if err := uc.repo.Create(categorie); err != nil {
		return nil, err
	}
	return toCategorieResponse(categorie), nil
}

// List renvoie toutes les catégories.
func (uc *CategorieUseCase) List() ([]dto.CategorieResponse, error) {
	categories, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategorieResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategorieResponse(c))
	}
	return out, nil
}

// Update met à jour nom et description.
func (uc *CategorieUseCase) Update(id string, in dto.CreateCategorieRequest) (*dto.CategorieResponse, error) {
	categorie, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categorie == nil {
		return nil, nil
	}
	if in.Nom != "" {
		categorie.Nom = in.Nom
	}
	categorie.Description = in.Description
	if err := uc.repo.Update(categorie); err != nil {
		return nil, err
	}
	return toCategorieResponse(categorie), nil
}

// Delete supprime une catégorie sans produits ; ErrConflict sinon.
func (uc *CategorieUseCase) Delete(id string) error {
	categorie, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if categorie == nil {
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

func toCategorieResponse(c *entity.Categorie) *dto.CategorieResponse {
	return &dto.CategorieResponse{
		ID:           c.ID,
		Nom:          c.Nom,
		Description:  c.Description,
		DateCreation: c.DateCreation,
	}
}
