package supply

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	appstock "github.com/jmkadima/facturier-api/internal/application/stock"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

const prefixeNumero = "APP"

// ApproUseCase gère les approvisionnements fournisseur. La réception émet une
// entrée de stock par ligne sous la même transaction que le passage au statut
// recu ; le garde-fou de statut est vérifié sous verrou de ligne pour que deux
// réceptions concurrentes ne doublent jamais les entrées.
type ApproUseCase struct {
	txRunner    TxRunner
	stockUC     *appstock.StockUseCase
	approRepo   repository.ApprovisionnementRepository
	produitRepo repository.ProduitRepository
}

// NewApproUseCase construit le cas d'usage.
func NewApproUseCase(
	txRunner TxRunner,
	stockUC *appstock.StockUseCase,
	approRepo repository.ApprovisionnementRepository,
	produitRepo repository.ProduitRepository,
) *ApproUseCase {
	return &ApproUseCase{
		txRunner:    txRunner,
		stockUC:     stockUC,
		approRepo:   approRepo,
		produitRepo: produitRepo,
	}
}

// Create crée un approvisionnement en_attente avec ses lignes. Le prix TTC de
// chaque ligne est calculé depuis le prix HT et la TVA (celle du produit si
// absente) ; les totaux HT et TTC sont stockés sur l'en-tête. Aucun stock ne
// bouge à la création.
func (uc *ApproUseCase) Create(ctx context.Context, in dto.CreateApproRequest) (*dto.ApproResponse, error) {
	if len(in.Lignes) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	appro := &entity.Approvisionnement{
		ID:                    uuid.New().String(),
		DateApprovisionnement: now,
		Fournisseur:           in.Fournisseur,
		ReferenceFournisseur:  in.ReferenceFournisseur,
		Statut:                entity.StatutEnAttente,
		Notes:                 in.Notes,
		DateCreation:          now,
	}

	lignes := make([]*entity.LigneApprovisionnement, 0, len(in.Lignes))
	for _, l := range in.Lignes {
		if l.ProduitID == "" || l.Quantite <= 0 || l.PrixUnitaireHT.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		produit, err := uc.produitRepo.GetByID(l.ProduitID)
		if err != nil {
			return nil, err
		}
		if produit == nil {
			return nil, domain.ErrNotFound
		}
		if !produit.Stockable {
			return nil, domain.ErrInvalidInput
		}
		tva := produit.TVA
		if l.TVA != nil {
			tva = *l.TVA
		}
		facteur := decimal.NewFromInt(1).Add(tva.Div(decimal.NewFromInt(100)))
		ligne := &entity.LigneApprovisionnement{
			ID:                  uuid.New().String(),
			ApprovisionnementID: appro.ID,
			ProduitID:           l.ProduitID,
			Quantite:            l.Quantite,
			PrixUnitaireHT:      l.PrixUnitaireHT,
			PrixUnitaireTTC:     l.PrixUnitaireHT.Mul(facteur),
			TVA:                 tva,
		}
		appro.TotalHT = appro.TotalHT.Add(ligne.TotalHT())
		appro.TotalTTC = appro.TotalTTC.Add(ligne.TotalTTC())
		lignes = append(lignes, ligne)
	}

	err := uc.txRunner.RunSupply(ctx, func(
		_ repository.ProduitRepository,
		_ repository.MouvementStockRepository,
		approRepo repository.ApprovisionnementRepository,
	) error {
		numero, err := prochainNumero(approRepo)
		if err != nil {
			return err
		}
		appro.Numero = numero
		if err := approRepo.Create(appro); err != nil {
			return err
		}
		for _, ligne := range lignes {
			if err := approRepo.CreateLigne(ligne); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toApproResponse(appro, lignes), nil
}

// GetByID renvoie un approvisionnement avec ses lignes, nil s'il n'existe pas.
func (uc *ApproUseCase) GetByID(id string) (*dto.ApproResponse, error) {
	appro, err := uc.approRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appro == nil {
		return nil, nil
	}
	lignes, err := uc.approRepo.GetLignes(id)
	if err != nil {
		return nil, err
	}
	return toApproResponse(appro, lignes), nil
}

// List renvoie une page d'approvisionnements, plus récent en premier.
func (uc *ApproUseCase) List(limit, offset int) (*dto.ApproListResponse, error) {
	appros, err := uc.approRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.approRepo.Count()
	if err != nil {
		return nil, err
	}
	resp := &dto.ApproListResponse{
		Items: make([]dto.ApproResponse, 0, len(appros)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, a := range appros {
		resp.Items = append(resp.Items, *toApproResponse(a, nil))
	}
	return resp, nil
}

// Recevoir reçoit un approvisionnement : une entrée de stock par ligne puis
// passage au statut recu, le tout dans une transaction. Le statut est relu
// sous verrou de ligne : depuis un autre statut qu'en_attente la réception
// échoue en ErrConflict, une commande ne se reçoit donc qu'une fois.
func (uc *ApproUseCase) Recevoir(ctx context.Context, id, utilisateur string) (*dto.ApproResponse, error) {
	var appro *entity.Approvisionnement
	var lignes []*entity.LigneApprovisionnement

	err := uc.txRunner.RunSupply(ctx, func(
		produitRepo repository.ProduitRepository,
		mouvementRepo repository.MouvementStockRepository,
		approRepo repository.ApprovisionnementRepository,
	) error {
		a, err := approRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if a.Statut != entity.StatutEnAttente {
			return domain.ErrConflict
		}
		ls, err := approRepo.GetLignes(id)
		if err != nil {
			return err
		}
		now := time.Now()
		commentaire := fmt.Sprintf("Réception approvisionnement %s", a.Numero)
		for _, ligne := range ls {
			_, err := uc.stockUC.EnregistrerEntreeDansTx(
				produitRepo, mouvementRepo,
				ligne.ProduitID, ligne.Quantite,
				entity.NewReferenceApprovisionnement(a.ID),
				commentaire, utilisateur, now,
			)
			if err != nil {
				return err
			}
		}
		if err := approRepo.UpdateStatut(id, entity.StatutRecu); err != nil {
			return err
		}
		a.Statut = entity.StatutRecu
		appro = a
		lignes = ls
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toApproResponse(appro, lignes), nil
}

// Annuler annule un approvisionnement en_attente ; depuis recu ou annule la
// demande échoue en ErrConflict. Aucun mouvement de stock n'est émis.
func (uc *ApproUseCase) Annuler(ctx context.Context, id string) (*dto.ApproResponse, error) {
	var appro *entity.Approvisionnement

	err := uc.txRunner.RunSupply(ctx, func(
		_ repository.ProduitRepository,
		_ repository.MouvementStockRepository,
		approRepo repository.ApprovisionnementRepository,
	) error {
		a, err := approRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if a.Statut != entity.StatutEnAttente {
			return domain.ErrConflict
		}
		if err := approRepo.UpdateStatut(id, entity.StatutAnnule); err != nil {
			return err
		}
		a.Statut = entity.StatutAnnule
		appro = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toApproResponse(appro, nil), nil
}

// prochainNumero génère le numéro suivant (APP0001...) depuis le dernier connu.
func prochainNumero(repo repository.ApprovisionnementRepository) (string, error) {
	dernier, err := repo.DernierNumero(prefixeNumero)
	if err != nil {
		return "", err
	}
	suivant := 1
	if dernier != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(dernier, prefixeNumero))
		if err != nil {
			return "", fmt.Errorf("numéro invalide %q: %w", dernier, err)
		}
		suivant = n + 1
	}
	return fmt.Sprintf("%s%04d", prefixeNumero, suivant), nil
}

func toApproResponse(a *entity.Approvisionnement, lignes []*entity.LigneApprovisionnement) *dto.ApproResponse {
	resp := &dto.ApproResponse{
		ID:                   a.ID,
		Numero:               a.Numero,
		Date:                 a.DateApprovisionnement,
		Fournisseur:          a.Fournisseur,
		ReferenceFournisseur: a.ReferenceFournisseur,
		Statut:               a.Statut,
		TotalHT:              a.TotalHT,
		TotalTTC:             a.TotalTTC,
		Notes:                a.Notes,
	}
	for _, l := range lignes {
		resp.Lignes = append(resp.Lignes, dto.LigneApproResponse{
			ID:              l.ID,
			ProduitID:       l.ProduitID,
			Quantite:        l.Quantite,
			PrixUnitaireHT:  l.PrixUnitaireHT,
			PrixUnitaireTTC: l.PrixUnitaireTTC,
			TVA:             l.TVA,
			TotalHT:         l.TotalHT(),
			TotalTTC:        l.TotalTTC(),
		})
	}
	return resp
}
