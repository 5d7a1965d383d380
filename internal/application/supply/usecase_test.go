package supply

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	appstock "github.com/jmkadima/facturier-api/internal/application/stock"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

type fakeProduitRepo struct {
	produits map[string]*entity.Produit
}

func (r *fakeProduitRepo) Create(p *entity.Produit) error {
	copie := *p
	r.produits[p.ID] = &copie
	return nil
}

func (r *fakeProduitRepo) GetByID(id string) (*entity.Produit, error) {
	p, ok := r.produits[id]
	if !ok {
		return nil, nil
	}
	copie := *p
	return &copie, nil
}

func (r *fakeProduitRepo) GetByCode(code string) (*entity.Produit, error) { return nil, nil }

func (r *fakeProduitRepo) GetForUpdate(id string) (*entity.Produit, error) {
	return r.GetByID(id)
}

func (r *fakeProduitRepo) Update(p *entity.Produit) error {
	copie := *p
	r.produits[p.ID] = &copie
	return nil
}

func (r *fakeProduitRepo) UpdateStock(id string, stock int64) error {
	r.produits[id].StockActuel = stock
	return nil
}

func (r *fakeProduitRepo) List(recherche string, limit, offset int) ([]*entity.Produit, error) {
	return nil, nil
}

func (r *fakeProduitRepo) Count(recherche string) (int, error) { return 0, nil }

func (r *fakeProduitRepo) ListStockables() ([]*entity.Produit, error) { return nil, nil }

func (r *fakeProduitRepo) Delete(id string) error { return nil }

type fakeMouvementRepo struct {
	mouvements []*entity.MouvementStock
}

func (r *fakeMouvementRepo) Create(m *entity.MouvementStock) error {
	copie := *m
	r.mouvements = append(r.mouvements, &copie)
	return nil
}

func (r *fakeMouvementRepo) ListByProduit(produitID string) ([]*entity.MouvementStock, error) {
	var out []*entity.MouvementStock
	for _, m := range r.mouvements {
		if m.ProduitID == produitID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMouvementRepo) HasForProduit(produitID string) (bool, error) {
	for _, m := range r.mouvements {
		if m.ProduitID == produitID {
			return true, nil
		}
	}
	return false, nil
}

type fakeApproRepo struct {
	appros map[string]*entity.Approvisionnement
	lignes map[string][]*entity.LigneApprovisionnement
}

func newFakeApproRepo() *fakeApproRepo {
	return &fakeApproRepo{
		appros: make(map[string]*entity.Approvisionnement),
		lignes: make(map[string][]*entity.LigneApprovisionnement),
	}
}

func (r *fakeApproRepo) Create(a *entity.Approvisionnement) error {
	copie := *a
	r.appros[a.ID] = &copie
	return nil
}

func (r *fakeApproRepo) CreateLigne(l *entity.LigneApprovisionnement) error {
	copie := *l
	r.lignes[l.ApprovisionnementID] = append(r.lignes[l.ApprovisionnementID], &copie)
	return nil
}

func (r *fakeApproRepo) GetByID(id string) (*entity.Approvisionnement, error) {
	a, ok := r.appros[id]
	if !ok {
		return nil, nil
	}
	copie := *a
	return &copie, nil
}

func (r *fakeApproRepo) GetForUpdate(id string) (*entity.Approvisionnement, error) {
	return r.GetByID(id)
}

func (r *fakeApproRepo) GetLignes(approID string) ([]*entity.LigneApprovisionnement, error) {
	return r.lignes[approID], nil
}

func (r *fakeApproRepo) UpdateStatut(id, statut string) error {
	r.appros[id].Statut = statut
	return nil
}

func (r *fakeApproRepo) List(limit, offset int) ([]*entity.Approvisionnement, error) {
	var out []*entity.Approvisionnement
	for _, a := range r.appros {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeApproRepo) Count() (int, error) { return len(r.appros), nil }

func (r *fakeApproRepo) DernierNumero(prefixe string) (string, error) {
	dernier := ""
	for _, a := range r.appros {
		if strings.HasPrefix(a.Numero, prefixe) && a.Numero > dernier {
			dernier = a.Numero
		}
	}
	return dernier, nil
}

type fakeSupplyTxRunner struct {
	produitRepo   repository.ProduitRepository
	mouvementRepo repository.MouvementStockRepository
	approRepo     repository.ApprovisionnementRepository
}

func (r *fakeSupplyTxRunner) RunSupply(ctx context.Context, fn func(
	repository.ProduitRepository,
	repository.MouvementStockRepository,
	repository.ApprovisionnementRepository,
) error) error {
	return fn(r.produitRepo, r.mouvementRepo, r.approRepo)
}

type fakeStockTxRunner struct {
	produitRepo   repository.ProduitRepository
	mouvementRepo repository.MouvementStockRepository
}

func (r *fakeStockTxRunner) Run(ctx context.Context, fn func(
	repository.ProduitRepository,
	repository.MouvementStockRepository,
) error) error {
	return fn(r.produitRepo, r.mouvementRepo)
}

func newFixtureSupply(t *testing.T) (*ApproUseCase, *fakeProduitRepo, *fakeMouvementRepo, *entity.Produit) {
	t.Helper()
	produit := &entity.Produit{
		ID:          uuid.New().String(),
		Nom:         "Fer à béton 12mm",
		Code:        "FER-12",
		Stockable:   true,
		TVA:         decimal.NewFromInt(20),
		StockActuel: 10,
	}
	produitRepo := &fakeProduitRepo{produits: map[string]*entity.Produit{produit.ID: produit}}
	mouvementRepo := &fakeMouvementRepo{}
	approRepo := newFakeApproRepo()
	stockUC := appstock.NewStockUseCase(
		&fakeStockTxRunner{produitRepo: produitRepo, mouvementRepo: mouvementRepo},
		produitRepo,
		mouvementRepo,
	)
	uc := NewApproUseCase(
		&fakeSupplyTxRunner{produitRepo: produitRepo, mouvementRepo: mouvementRepo, approRepo: approRepo},
		stockUC,
		approRepo,
		produitRepo,
	)
	return uc, produitRepo, mouvementRepo, produit
}

func TestCreateAppro_NumerotationEtTotaux(t *testing.T) {
	uc, produitRepo, mouvementRepo, produit := newFixtureSupply(t)

	resp, err := uc.Create(context.Background(), dto.CreateApproRequest{
		Fournisseur: "Quincaillerie du Centre",
		Lignes: []dto.LigneApproRequest{
			{ProduitID: produit.ID, Quantite: 5, PrixUnitaireHT: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "APP0001", resp.Numero)
	assert.Equal(t, entity.StatutEnAttente, resp.Statut)
	// HT : 5 × 10 = 50 ; TTC : 50 × 1.20 = 60
	assert.True(t, resp.TotalHT.Equal(decimal.NewFromInt(50)), "HT = %s", resp.TotalHT)
	assert.True(t, resp.TotalTTC.Equal(decimal.NewFromInt(60)), "TTC = %s", resp.TotalTTC)
	require.Len(t, resp.Lignes, 1)
	assert.True(t, resp.Lignes[0].PrixUnitaireTTC.Equal(decimal.NewFromInt(12)))

	// la création ne touche pas au stock
	p, _ := produitRepo.GetByID(produit.ID)
	assert.Equal(t, int64(10), p.StockActuel)
	assert.Empty(t, mouvementRepo.mouvements)

	resp2, err := uc.Create(context.Background(), dto.CreateApproRequest{
		Lignes: []dto.LigneApproRequest{
			{ProduitID: produit.ID, Quantite: 1, PrixUnitaireHT: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "APP0002", resp2.Numero)
}

func TestCreateAppro_Validation(t *testing.T) {
	uc, _, _, produit := newFixtureSupply(t)

	_, err := uc.Create(context.Background(), dto.CreateApproRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateApproRequest{
		Lignes: []dto.LigneApproRequest{{ProduitID: produit.ID, Quantite: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateApproRequest{
		Lignes: []dto.LigneApproRequest{{ProduitID: uuid.New().String(), Quantite: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecevoir_EntreesEtStatut(t *testing.T) {
	uc, produitRepo, mouvementRepo, produit := newFixtureSupply(t)

	appro, err := uc.Create(context.Background(), dto.CreateApproRequest{
		Lignes: []dto.LigneApproRequest{
			{ProduitID: produit.ID, Quantite: 5, PrixUnitaireHT: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	recu, err := uc.Recevoir(context.Background(), appro.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.StatutRecu, recu.Statut)

	p, _ := produitRepo.GetByID(produit.ID)
	assert.Equal(t, int64(15), p.StockActuel)

	require.Len(t, mouvementRepo.mouvements, 1)
	m := mouvementRepo.mouvements[0]
	assert.Equal(t, entity.MouvementEntree, m.TypeMouvement)
	assert.Equal(t, int64(10), m.StockAvant)
	assert.Equal(t, int64(15), m.StockApres)
	assert.Equal(t, entity.ReferenceApprovisionnement, m.Reference.Type)
	assert.Equal(t, appro.ID, m.Reference.ID)
	assert.Equal(t, "admin", m.Utilisateur)
	assert.Contains(t, m.Commentaire, appro.Numero)
}

func TestRecevoir_DeuxFoisRefuse(t *testing.T) {
	uc, produitRepo, mouvementRepo, produit := newFixtureSupply(t)

	appro, err := uc.Create(context.Background(), dto.CreateApproRequest{
		Lignes: []dto.LigneApproRequest{
			{ProduitID: produit.ID, Quantite: 5, PrixUnitaireHT: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	_, err = uc.Recevoir(context.Background(), appro.ID, "admin")
	require.NoError(t, err)

	// seconde réception : refusée sous verrou, aucune entrée doublée
	_, err = uc.Recevoir(context.Background(), appro.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrConflict)

	p, _ := produitRepo.GetByID(produit.ID)
	assert.Equal(t, int64(15), p.StockActuel)
	assert.Len(t, mouvementRepo.mouvements, 1)
}

func TestAnnuler(t *testing.T) {
	uc, produitRepo, mouvementRepo, produit := newFixtureSupply(t)

	appro, err := uc.Create(context.Background(), dto.CreateApproRequest{
		Lignes: []dto.LigneApproRequest{
			{ProduitID: produit.ID, Quantite: 5, PrixUnitaireHT: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	annule, err := uc.Annuler(context.Background(), appro.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatutAnnule, annule.Statut)

	// annulation sans effet sur le stock
	p, _ := produitRepo.GetByID(produit.ID)
	assert.Equal(t, int64(10), p.StockActuel)
	assert.Empty(t, mouvementRepo.mouvements)

	// un approvisionnement annulé ne se reçoit plus
	_, err = uc.Recevoir(context.Background(), appro.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Annuler(context.Background(), appro.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Annuler(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecevoir_Introuvable(t *testing.T) {
	uc, _, _, _ := newFixtureSupply(t)
	_, err := uc.Recevoir(context.Background(), uuid.New().String(), "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
