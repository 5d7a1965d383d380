package catalogue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	appstock "github.com/jmkadima/facturier-api/internal/application/stock"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
	"github.com/jmkadima/facturier-api/pkg/strutil"
)

// ProduitUseCase CRUD du catalogue produits. La création d'un produit
// stockable avec quantité initiale insère le produit et son mouvement de
// stock initial dans la même transaction.
type ProduitUseCase struct {
	txRunner      appstock.TxRunner
	stockUC       *appstock.StockUseCase
	produitRepo   repository.ProduitRepository
	categorieRepo repository.CategorieRepository
	uniteRepo     repository.UniteMesureRepository
	mouvementRepo repository.MouvementStockRepository
	factureRepo   repository.FactureRepository
}

// NewProduitUseCase construit le cas d'usage.
func NewProduitUseCase(
	txRunner appstock.TxRunner,
	stockUC *appstock.StockUseCase,
	produitRepo repository.ProduitRepository,
	categorieRepo repository.CategorieRepository,
	uniteRepo repository.UniteMesureRepository,
	mouvementRepo repository.MouvementStockRepository,
	factureRepo repository.FactureRepository,
) *ProduitUseCase {
	return &ProduitUseCase{
		txRunner:      txRunner,
		stockUC:       stockUC,
		produitRepo:   produitRepo,
		categorieRepo: categorieRepo,
		uniteRepo:     uniteRepo,
		mouvementRepo: mouvementRepo,
		factureRepo:   factureRepo,
	}
}

// Create crée un produit. Le code est dérivé du nom s'il est absent ; un code
// déjà pris renvoie ErrDuplicate. Pour un produit stockable avec quantité
// initiale > 0, le mouvement de stock initial est créé atomiquement.
func (uc *ProduitUseCase) Create(ctx context.Context, in dto.CreateProduitRequest) (*dto.ProduitResponse, error) {
	if in.Nom == "" || in.CategorieID == "" || in.UniteMesureID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PVTTC.IsNegative() || in.TVA.IsNegative() || in.QuantiteInitiale < 0 || in.StockMinimum < 0 {
		return nil, domain.ErrInvalidInput
	}

	categorie, err := uc.categorieRepo.GetByID(in.CategorieID)
	if err != nil {
		return nil, err
	}
	unite, err := uc.uniteRepo.GetByID(in.UniteMesureID)
	if err != nil {
		return nil, err
	}
	if categorie == nil || unite == nil {
		return nil, domain.ErrNotFound
	}

	code := in.Code
	if code == "" {
		code = strutil.CodeDepuisNom(in.Nom)
	}
	existing, err := uc.produitRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	produit := &entity.Produit{
		ID:            uuid.New().String(),
		Nom:           in.Nom,
		Code:          code,
		CategorieID:   in.CategorieID,
		UniteMesureID: in.UniteMesureID,
		TVA:           in.TVA,
		TC:            in.TC,
		PF:            in.PF,
		Stockable:     in.Stockable,
		PVTTC:         in.PVTTC,
		DateCreation:  now,
	}
	if in.Stockable {
		produit.PRU = in.PRU
		produit.StockMinimum = in.StockMinimum
	}

	err = uc.txRunner.Run(ctx, func(
		produitRepo repository.ProduitRepository,
		mouvementRepo repository.MouvementStockRepository,
	) error {
		if err := produitRepo.Create(produit); err != nil {
			return err
		}
		_, err := uc.stockUC.InitialiserStockDansTx(produitRepo, mouvementRepo, produit, in.QuantiteInitiale, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProduitResponse(produit), nil
}

// GetByID renvoie un produit, nil s'il n'existe pas.
func (uc *ProduitUseCase) GetByID(id string) (*dto.ProduitResponse, error) {
	produit, err := uc.produitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, nil
	}
	return toProduitResponse(produit), nil
}

// List renvoie une page de produits, filtrée par un terme de recherche
// (nom ou code) insensible aux accents.
func (uc *ProduitUseCase) List(recherche string, limit, offset int) (*dto.ProduitListResponse, error) {
	recherche = strutil.NormaliserRecherche(recherche)
	produits, err := uc.produitRepo.List(recherche, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.produitRepo.Count(recherche)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProduitListResponse{
		Items: make([]dto.ProduitResponse, 0, len(produits)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, p := range produits {
		resp.Items = append(resp.Items, *toProduitResponse(p))
	}
	return resp, nil
}

// Update met à jour les champs fournis. Le stock actuel n'est pas éditable ici.
func (uc *ProduitUseCase) Update(id string, in dto.UpdateProduitRequest) (*dto.ProduitResponse, error) {
	produit, err := uc.produitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, nil
	}
	if in.Nom != nil {
		produit.Nom = *in.Nom
	}
	if in.Code != nil && *in.Code != produit.Code {
		existing, err := uc.produitRepo.GetByCode(*in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		produit.Code = *in.Code
	}
	if in.CategorieID != nil {
		produit.CategorieID = *in.CategorieID
	}
	if in.UniteMesureID != nil {
		produit.UniteMesureID = *in.UniteMesureID
	}
	if in.TVA != nil {
		produit.TVA = *in.TVA
	}
	if in.TC != nil {
		produit.TC = *in.TC
	}
	if in.PF != nil {
		produit.PF = *in.PF
	}
	if in.PVTTC != nil {
		produit.PVTTC = *in.PVTTC
	}
	if in.PRU != nil {
		produit.PRU = *in.PRU
	}
	if in.StockMinimum != nil {
		produit.StockMinimum = *in.StockMinimum
	}
	if err := uc.produitRepo.Update(produit); err != nil {
		return nil, err
	}
	return toProduitResponse(produit), nil
}

// Delete supprime un produit. Refusé (ErrConflict) si des mouvements de stock
// ou des lignes de facture le référencent : l'historique prime.
func (uc *ProduitUseCase) Delete(id string) error {
	produit, err := uc.produitRepo.GetByID(id)
	if err != nil {
		return err
	}
	if produit == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.mouvementRepo.HasForProduit(id)
	if err != nil {
		return err
	}
	if !referenced {
		referenced, err = uc.factureRepo.HasLignesForProduit(id)
		if err != nil {
			return err
		}
	}
	if referenced {
		return domain.ErrConflict
	}
	return uc.produitRepo.Delete(id)
}

// VerifierCode indique si un code est libre ; propose sinon une variante.
func (uc *ProduitUseCase) VerifierCode(code, nom string) (*dto.CheckCodeResponse, error) {
	if code == "" && nom != "" {
		code = strutil.CodeDepuisNom(nom)
	}
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.produitRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	resp := &dto.CheckCodeResponse{Code: code, Disponible: existing == nil}
	if existing != nil {
		// première variante numérotée libre
		for i := 2; i < 100; i++ {
			candidat := fmt.Sprintf("%s-%d", code, i)
			p, err := uc.produitRepo.GetByCode(candidat)
			if err != nil {
				return nil, err
			}
			if p == nil {
				resp.Suggestion = candidat
				break
			}
		}
	}
	return resp, nil
}

func toProduitResponse(p *entity.Produit) *dto.ProduitResponse {
	return &dto.ProduitResponse{
		ID:            p.ID,
		Nom:           p.Nom,
		Code:          p.Code,
		CategorieID:   p.CategorieID,
		UniteMesureID: p.UniteMesureID,
		TVA:           p.TVA,
		TC:            p.TC,
		PF:            p.PF,
		Stockable:     p.Stockable,
		PVTTC:         p.PVTTC,
		PRU:           p.PRU,
		StockActuel:   p.StockActuel,
		StockMinimum:  p.StockMinimum,
		ValeurStock:   p.ValeurStock(),
		DateCreation:  p.DateCreation,
	}
}
