package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

// FactureUseCase gère factures et avoirs. La facturation ne touche jamais au
// stock : les sorties passent par le journal des mouvements.
type FactureUseCase struct {
	txRunner    TxRunner
	factureRepo repository.FactureRepository
	clientRepo  repository.ClientRepository
	produitRepo repository.ProduitRepository
	uniteRepo   repository.UniteMesureRepository
	pdfGen      FacturePDFGenerator
}

// NewFactureUseCase construit le cas d'usage. pdfGen peut être nil si le
// rendu PDF n'est pas câblé.
func NewFactureUseCase(
	txRunner TxRunner,
	factureRepo repository.FactureRepository,
	clientRepo repository.ClientRepository,
	produitRepo repository.ProduitRepository,
	uniteRepo repository.UniteMesureRepository,
	pdfGen FacturePDFGenerator,
) *FactureUseCase {
	return &FactureUseCase{
		txRunner:    txRunner,
		factureRepo: factureRepo,
		clientRepo:  clientRepo,
		produitRepo: produitRepo,
		uniteRepo:   uniteRepo,
		pdfGen:      pdfGen,
	}
}

// Create crée une facture ou un avoir avec ses lignes dans une transaction.
// Le numéro est généré sous la transaction si absent ; le prix unitaire d'une
// ligne à zéro est remplacé par le PV TTC du produit, la TVA absente par celle
// du produit. Le total stocké est la somme des totaux TTC des lignes.
func (uc *FactureUseCase) Create(ctx context.Context, in dto.CreateFactureRequest) (*dto.FactureResponse, error) {
	typeDocument := in.TypeDocument
	if typeDocument == "" {
		typeDocument = entity.DocumentFacture
	}
	if typeDocument != entity.DocumentFacture && typeDocument != entity.DocumentAvoir {
		return nil, domain.ErrInvalidInput
	}
	if in.ClientID == "" || len(in.Lignes) == 0 {
		return nil, domain.ErrInvalidInput
	}
	etat := in.Etat
	if etat == "" {
		etat = entity.EtatEnAttente
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	facture := &entity.Facture{
		ID:           uuid.New().String(),
		Numero:       in.Numero,
		TypeDocument: typeDocument,
		ClientID:     in.ClientID,
		Date:         now,
		Paiement:     in.Paiement,
		Etat:         etat,
		Notes:        in.Notes,
		DateCreation: now,
	}

	lignes, err := uc.construireLignes(facture.ID, in.Lignes)
	if err != nil {
		return nil, err
	}
	facture.Total = totalLignes(lignes)

	err = uc.txRunner.RunBilling(ctx, func(factureRepo repository.FactureRepository) error {
		if facture.Numero == "" {
			numero, err := prochainNumero(factureRepo, prefixeDocument(typeDocument))
			if err != nil {
				return err
			}
			facture.Numero = numero
		}
		if err := factureRepo.Create(facture); err != nil {
			return err
		}
		for _, ligne := range lignes {
			if err := factureRepo.CreateLigne(ligne); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toFactureResponse(facture, lignes), nil
}

// GetByID renvoie une facture avec ses lignes, nil si elle n'existe pas.
func (uc *FactureUseCase) GetByID(id string) (*dto.FactureResponse, error) {
	facture, err := uc.factureRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if facture == nil {
		return nil, nil
	}
	lignes, err := uc.factureRepo.GetLignes(id)
	if err != nil {
		return nil, err
	}
	return toFactureResponse(facture, lignes), nil
}

// List renvoie une page de factures filtrée, accompagnée des statistiques
// globales (totaux facturé, avoirs, net, impayé).
func (uc *FactureUseCase) List(filtres repository.FiltresFacture, limit, offset int) (*dto.FactureListResponse, error) {
	factures, err := uc.factureRepo.List(filtres, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.factureRepo.Count(filtres)
	if err != nil {
		return nil, err
	}
	stats, err := uc.factureRepo.Stats()
	if err != nil {
		return nil, err
	}
	resp := &dto.FactureListResponse{
		Items: make([]dto.FactureResponse, 0, len(factures)),
		Stats: dto.StatsFacturesResponse{
			TotalFacture: stats.TotalFacture,
			TotalAvoir:   stats.TotalAvoir,
			TotalNet:     stats.TotalFacture.Add(stats.TotalAvoir),
			TotalImpaye:  stats.TotalImpaye,
			NbFactures:   stats.NbFactures,
			NbAvoirs:     stats.NbAvoirs,
			NbImpayes:    stats.NbImpayes,
		},
		Page: dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, f := range factures {
		resp.Items = append(resp.Items, *toFactureResponse(f, nil))
	}
	return resp, nil
}

// Update édite une facture. Les lignes fournies remplacent les anciennes et
// le total est recalculé ; sans lignes, seuls paiement, état et notes changent.
func (uc *FactureUseCase) Update(ctx context.Context, id string, in dto.UpdateFactureRequest) (*dto.FactureResponse, error) {
	facture, err := uc.factureRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if facture == nil {
		return nil, nil
	}
	if in.Paiement != nil {
		facture.Paiement = *in.Paiement
	}
	if in.Etat != nil {
		facture.Etat = *in.Etat
	}
	if in.Notes != nil {
		facture.Notes = *in.Notes
	}

	var lignes []*entity.LigneFacture
	if len(in.Lignes) > 0 {
		lignes, err = uc.construireLignes(facture.ID, in.Lignes)
		if err != nil {
			return nil, err
		}
		facture.Total = totalLignes(lignes)
	}

	err = uc.txRunner.RunBilling(ctx, func(factureRepo repository.FactureRepository) error {
		if len(lignes) > 0 {
			if err := factureRepo.DeleteLignes(facture.ID); err != nil {
				return err
			}
			for _, ligne := range lignes {
				if err := factureRepo.CreateLigne(ligne); err != nil {
					return err
				}
			}
		}
		return factureRepo.Update(facture)
	})
	if err != nil {
		return nil, err
	}
	if lignes == nil {
		lignes, err = uc.factureRepo.GetLignes(facture.ID)
		if err != nil {
			return nil, err
		}
	}
	return toFactureResponse(facture, lignes), nil
}

// ConvertirEnAvoir crée l'avoir miroir d'une facture : mêmes lignes avec
// quantités négatives, total opposé, référence à la facture d'origine. Seule
// une facture peut être convertie, jamais un avoir.
func (uc *FactureUseCase) ConvertirEnAvoir(ctx context.Context, factureID string) (*dto.FactureResponse, error) {
	original, err := uc.factureRepo.GetByID(factureID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.ErrNotFound
	}
	if original.TypeDocument != entity.DocumentFacture {
		return nil, domain.ErrConflict
	}
	lignesOriginales, err := uc.factureRepo.GetLignes(factureID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	avoir := &entity.Facture{
		ID:                 uuid.New().String(),
		TypeDocument:       entity.DocumentAvoir,
		ClientID:           original.ClientID,
		FactureOriginaleID: original.ID,
		Date:               now,
		Paiement:           original.Paiement,
		Etat:               entity.EtatEnAttente,
		Notes:              fmt.Sprintf("Avoir sur facture %s", original.Numero),
		DateCreation:       now,
	}
	lignes := make([]*entity.LigneFacture, 0, len(lignesOriginales))
	for _, l := range lignesOriginales {
		lignes = append(lignes, &entity.LigneFacture{
			ID:           uuid.New().String(),
			FactureID:    avoir.ID,
			ProduitID:    l.ProduitID,
			Quantite:     -l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
			TVA:          l.TVA,
		})
	}
	avoir.Total = totalLignes(lignes)

	err = uc.txRunner.RunBilling(ctx, func(factureRepo repository.FactureRepository) error {
		numero, err := prochainNumero(factureRepo, prefixeDocument(entity.DocumentAvoir))
		if err != nil {
			return err
		}
		avoir.Numero = numero
		if err := factureRepo.Create(avoir); err != nil {
			return err
		}
		for _, ligne := range lignes {
			if err := factureRepo.CreateLigne(ligne); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toFactureResponse(avoir, lignes), nil
}

// GenererPDF rend la facture en PDF.
func (uc *FactureUseCase) GenererPDF(ctx context.Context, factureID string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("générateur PDF non configuré")
	}
	facture, err := uc.factureRepo.GetByID(factureID)
	if err != nil {
		return nil, err
	}
	if facture == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(facture.ClientID)
	if err != nil {
		return nil, err
	}
	lignes, err := uc.factureRepo.GetLignes(factureID)
	if err != nil {
		return nil, err
	}

	lignesPDF := make([]LignePourPDF, 0, len(lignes))
	for _, l := range lignes {
		lp := LignePourPDF{
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
			TVA:          l.TVA,
			TotalTTC:     l.TotalTTC(),
		}
		produit, err := uc.produitRepo.GetByID(l.ProduitID)
		if err != nil {
			return nil, err
		}
		if produit != nil {
			lp.ProduitNom = produit.Nom
			lp.ProduitCode = produit.Code
			unite, err := uc.uniteRepo.GetByID(produit.UniteMesureID)
			if err != nil {
				return nil, err
			}
			if unite != nil {
				lp.UniteSymbole = unite.Symbole
			}
		}
		lignesPDF = append(lignesPDF, lp)
	}
	return uc.pdfGen.GenererFacturePDF(ctx, facture, client, lignesPDF)
}

// construireLignes valide les lignes demandées et les matérialise avec les
// valeurs par défaut tirées du produit.
func (uc *FactureUseCase) construireLignes(factureID string, in []dto.LigneFactureRequest) ([]*entity.LigneFacture, error) {
	lignes := make([]*entity.LigneFacture, 0, len(in))
	for _, l := range in {
		if l.ProduitID == "" || l.Quantite == 0 {
			return nil, domain.ErrInvalidInput
		}
		produit, err := uc.produitRepo.GetByID(l.ProduitID)
		if err != nil {
			return nil, err
		}
		if produit == nil {
			return nil, domain.ErrNotFound
		}
		ligne := &entity.LigneFacture{
			ID:           uuid.New().String(),
			FactureID:    factureID,
			ProduitID:    l.ProduitID,
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
			TVA:          produit.TVA,
		}
		if ligne.PrixUnitaire.IsZero() {
			ligne.PrixUnitaire = produit.PVTTC
		}
		if l.TVA != nil {
			ligne.TVA = *l.TVA
		}
		lignes = append(lignes, ligne)
	}
	return lignes, nil
}

func totalLignes(lignes []*entity.LigneFacture) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lignes {
		total = total.Add(l.TotalTTC())
	}
	return total
}

// prefixeDocument renvoie le préfixe de numérotation du type de document.
func prefixeDocument(typeDocument string) string {
	if typeDocument == entity.DocumentAvoir {
		return "A"
	}
	return "F"
}

// prochainNumero génère le numéro suivant pour un préfixe à partir du dernier
// numéro connu, sur quatre chiffres minimum (F0001, A0042...).
func prochainNumero(repo repository.FactureRepository, prefixe string) (string, error) {
	dernier, err := repo.DernierNumero(prefixe)
	if err != nil {
		return "", err
	}
	suivant := 1
	if dernier != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(dernier, prefixe))
		if err != nil {
			return "", fmt.Errorf("numéro invalide %q: %w", dernier, err)
		}
		suivant = n + 1
	}
	return fmt.Sprintf("%s%04d", prefixe, suivant), nil
}

func toFactureResponse(f *entity.Facture, lignes []*entity.LigneFacture) *dto.FactureResponse {
	resp := &dto.FactureResponse{
		ID:                 f.ID,
		Numero:             f.Numero,
		TypeDocument:       f.TypeDocument,
		ClientID:           f.ClientID,
		FactureOriginaleID: f.FactureOriginaleID,
		Date:               f.Date,
		Total:              f.Total,
		Paiement:           f.Paiement,
		Etat:               f.Etat,
		Notes:              f.Notes,
	}
	for _, l := range lignes {
		resp.Lignes = append(resp.Lignes, dto.LigneFactureResponse{
			ID:           l.ID,
			ProduitID:    l.ProduitID,
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
			TVA:          l.TVA,
			TotalHT:      l.TotalHT(),
			TotalTTC:     l.TotalTTC(),
		})
	}
	return resp
}
