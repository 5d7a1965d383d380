package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
	domstock "github.com/jmkadima/facturier-api/internal/domain/stock"
)

// StockUseCase grand livre de stock : unique écrivain de Produit.StockActuel.
// Chaque mutation verrouille la ligne du produit (SELECT FOR UPDATE), applique
// le pli du domaine et insère le mouvement dans la même transaction.
type StockUseCase struct {
	txRunner      TxRunner
	produitRepo   repository.ProduitRepository
	mouvementRepo repository.MouvementStockRepository
}

// NewStockUseCase construit le cas d'usage.
func NewStockUseCase(
	txRunner TxRunner,
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementStockRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		produitRepo:   produitRepo,
		mouvementRepo: mouvementRepo,
	}
}

// MouvementInput entrée pour EnregistrerMouvement. Quantite est une magnitude
// non négative pour entree/sortie ; pour un ajustement c'est la cible absolue.
// Reference est optionnelle (zéro = aucune origine).
type MouvementInput struct {
	ProduitID   string
	Type        string
	Quantite    int64
	Reference   entity.ReferenceMouvement
	Commentaire string
	Utilisateur string
}

// EnregistrerMouvement valide l'entrée puis, dans une transaction : verrouille
// la ligne du produit, applique le mouvement (sortie bornée à zéro, ajustement
// vers la cible), insère le mouvement et met à jour le stock du produit.
// Commit ou rollback des deux écritures ensemble.
func (uc *StockUseCase) EnregistrerMouvement(ctx context.Context, input MouvementInput) (*dto.MouvementView, error) {
	switch input.Type {
	case entity.MouvementEntree, entity.MouvementSortie, entity.MouvementAjustement:
	default:
		return nil, domain.ErrInvalidInput
	}
	// Une magnitude négative inverserait silencieusement le mouvement.
	if input.ProduitID == "" || input.Quantite < 0 {
		return nil, domain.ErrInvalidInput
	}

	produit, err := uc.produitRepo.GetByID(input.ProduitID)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	if !produit.Stockable {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var mouvement *entity.MouvementStock

	err = uc.txRunner.Run(ctx, func(
		produitRepo repository.ProduitRepository,
		mouvementRepo repository.MouvementStockRepository,
	) error {
		m, err := appliquerDansTx(produitRepo, mouvementRepo, input, now)
		if err != nil {
			return err
		}
		mouvement = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToMouvementView(mouvement), nil
}

// EnregistrerEntreeDansTx applique une entrée de stock avec les repositories
// du caller (même transaction). Utilisé par la réception d'approvisionnement
// pour que les entrées et le changement de statut soient atomiques.
func (uc *StockUseCase) EnregistrerEntreeDansTx(
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementStockRepository,
	produitID string,
	quantite int64,
	reference entity.ReferenceMouvement,
	commentaire, utilisateur string,
	now time.Time,
) (*entity.MouvementStock, error) {
	if quantite < 0 {
		return nil, domain.ErrInvalidInput
	}
	return appliquerDansTx(produitRepo, mouvementRepo, MouvementInput{
		ProduitID:   produitID,
		Type:        entity.MouvementEntree,
		Quantite:    quantite,
		Reference:   reference,
		Commentaire: commentaire,
		Utilisateur: utilisateur,
	}, now)
}

// InitialiserStockDansTx crée le mouvement de stock initial d'un produit qui
// vient d'être inséré dans la même transaction. Renvoie nil sans créer de
// mouvement si le produit n'est pas stockable ou si la quantité est <= 0 :
// le stock reste à zéro.
func (uc *StockUseCase) InitialiserStockDansTx(
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementStockRepository,
	produit *entity.Produit,
	quantiteInitiale int64,
	now time.Time,
) (*entity.MouvementStock, error) {
	if !produit.Stockable || quantiteInitiale <= 0 {
		return nil, nil
	}
	res, _ := domstock.Appliquer(entity.MouvementEntree, 0, quantiteInitiale)
	mouvement := &entity.MouvementStock{
		ID:            uuid.New().String(),
		ProduitID:     produit.ID,
		TypeMouvement: entity.MouvementEntree,
		Quantite:      res.Quantite,
		StockAvant:    res.StockAvant,
		StockApres:    res.StockApres,
		Reference:     entity.NewReferenceInitiale(),
		Commentaire:   "Stock initial",
		Utilisateur:   "System",
		DateMouvement: now,
	}
	if err := mouvementRepo.Create(mouvement); err != nil {
		return nil, err
	}
	if err := produitRepo.UpdateStock(produit.ID, res.StockApres); err != nil {
		return nil, err
	}
	produit.StockActuel = res.StockApres
	return mouvement, nil
}

// Historique renvoie les mouvements d'un produit, plus récent en premier.
func (uc *StockUseCase) Historique(ctx context.Context, produitID string) (*dto.HistoriqueResponse, error) {
	produit, err := uc.produitRepo.GetByID(produitID)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	mouvements, err := uc.mouvementRepo.ListByProduit(produitID)
	if err != nil {
		return nil, err
	}
	resp := &dto.HistoriqueResponse{
		ProduitID:   produit.ID,
		ProduitNom:  produit.Nom,
		StockActuel: produit.StockActuel,
		Mouvements:  make([]dto.MouvementView, 0, len(mouvements)),
	}
	for _, m := range mouvements {
		resp.Mouvements = append(resp.Mouvements, *ToMouvementView(m))
	}
	return resp, nil
}

// appliquerDansTx verrouille la ligne du produit, applique le pli et persiste
// mouvement + stock. Toute erreur fait rollback chez le caller.
func appliquerDansTx(
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementStockRepository,
	input MouvementInput,
	now time.Time,
) (*entity.MouvementStock, error) {
	produit, err := produitRepo.GetForUpdate(input.ProduitID)
	if err != nil {
		return nil, err
	}
	if produit == nil {
		return nil, domain.ErrNotFound
	}
	res, ok := domstock.Appliquer(input.Type, produit.StockActuel, input.Quantite)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	reference := input.Reference
	if reference.Type == "" && input.Type == entity.MouvementAjustement {
		reference = entity.NewReferenceAjustement()
	}
	mouvement := &entity.MouvementStock{
		ID:            uuid.New().String(),
		ProduitID:     produit.ID,
		TypeMouvement: input.Type,
		Quantite:      res.Quantite,
		StockAvant:    res.StockAvant,
		StockApres:    res.StockApres,
		Reference:     reference,
		Commentaire:   input.Commentaire,
		Utilisateur:   input.Utilisateur,
		DateMouvement: now,
	}
	if err := mouvementRepo.Create(mouvement); err != nil {
		return nil, err
	}
	if err := produitRepo.UpdateStock(produit.ID, res.StockApres); err != nil {
		return nil, err
	}
	return mouvement, nil
}

// ToMouvementView convertit l'entité en vue API.
func ToMouvementView(m *entity.MouvementStock) *dto.MouvementView {
	if m == nil {
		return nil
	}
	return &dto.MouvementView{
		ID:            m.ID,
		ProduitID:     m.ProduitID,
		Type:          m.TypeMouvement,
		Quantite:      m.Quantite,
		StockAvant:    m.StockAvant,
		StockApres:    m.StockApres,
		ReferenceType: string(m.Reference.Type),
		ReferenceID:   m.Reference.ID,
		Commentaire:   m.Commentaire,
		Utilisateur:   m.Utilisateur,
		Date:          m.DateMouvement,
	}
}
