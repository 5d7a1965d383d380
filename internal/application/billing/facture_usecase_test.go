package billing

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

type fakeFactureRepo struct {
	factures map[string]*entity.Facture
	lignes   map[string][]*entity.LigneFacture
}

func newFakeFactureRepo() *fakeFactureRepo {
	return &fakeFactureRepo{
		factures: make(map[string]*entity.Facture),
		lignes:   make(map[string][]*entity.LigneFacture),
	}
}

func (r *fakeFactureRepo) Create(f *entity.Facture) error {
	for _, existing := range r.factures {
		if existing.Numero == f.Numero {
			return domain.ErrDuplicate
		}
	}
	copie := *f
	r.factures[f.ID] = &copie
	return nil
}

func (r *fakeFactureRepo) CreateLigne(l *entity.LigneFacture) error {
	copie := *l
	r.lignes[l.FactureID] = append(r.lignes[l.FactureID], &copie)
	return nil
}

func (r *fakeFactureRepo) GetByID(id string) (*entity.Facture, error) {
	f, ok := r.factures[id]
	if !ok {
		return nil, nil
	}
	copie := *f
	return &copie, nil
}

func (r *fakeFactureRepo) GetLignes(factureID string) ([]*entity.LigneFacture, error) {
	return r.lignes[factureID], nil
}

func (r *fakeFactureRepo) Update(f *entity.Facture) error {
	copie := *f
	r.factures[f.ID] = &copie
	return nil
}

func (r *fakeFactureRepo) DeleteLignes(factureID string) error {
	delete(r.lignes, factureID)
	return nil
}

func (r *fakeFactureRepo) List(filtres repository.FiltresFacture, limit, offset int) ([]*entity.Facture, error) {
	var out []*entity.Facture
	for _, f := range r.factures {
		if filtres.TypeDocument != "" && f.TypeDocument != filtres.TypeDocument {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *fakeFactureRepo) Count(filtres repository.FiltresFacture) (int, error) {
	out, _ := r.List(filtres, 0, 0)
	return len(out), nil
}

func (r *fakeFactureRepo) Stats() (*repository.StatsFactures, error) {
	stats := &repository.StatsFactures{}
	for _, f := range r.factures {
		if f.TypeDocument == entity.DocumentAvoir {
			stats.TotalAvoir = stats.TotalAvoir.Add(f.Total)
			stats.NbAvoirs++
			continue
		}
		stats.TotalFacture = stats.TotalFacture.Add(f.Total)
		stats.NbFactures++
		if f.Etat != entity.EtatPayee {
			stats.TotalImpaye = stats.TotalImpaye.Add(f.Total)
			stats.NbImpayes++
		}
	}
	return stats, nil
}

func (r *fakeFactureRepo) DernierNumero(prefixe string) (string, error) {
	dernier := ""
	for _, f := range r.factures {
		if strings.HasPrefix(f.Numero, prefixe) && f.Numero > dernier {
			dernier = f.Numero
		}
	}
	return dernier, nil
}

func (r *fakeFactureRepo) ListByClientEtPeriode(clientID, typeDocument string, debut, fin time.Time) ([]*entity.Facture, error) {
	var out []*entity.Facture
	for _, f := range r.factures {
		if f.ClientID != clientID || f.TypeDocument != typeDocument {
			continue
		}
		if f.Date.Before(debut) || f.Date.After(fin) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFactureRepo) ListByPeriode(typeDocument string, debut, fin time.Time) ([]*entity.Facture, error) {
	var out []*entity.Facture
	for _, f := range r.factures {
		if f.TypeDocument != typeDocument || f.Date.Before(debut) || f.Date.After(fin) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFactureRepo) HasLignesForProduit(produitID string) (bool, error) {
	for _, lignes := range r.lignes {
		for _, l := range lignes {
			if l.ProduitID == produitID {
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) List(recherche string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Count(recherche string) (int, error) {
	return len(r.clients), nil
}

func (r *fakeClientRepo) ListAll() ([]*entity.Client, error) {
	return r.List("", 0, 0)
}

type fakeProduitRepo struct {
	produits map[string]*entity.Produit
}

func (r *fakeProduitRepo) Create(p *entity.Produit) error { r.produits[p.ID] = p; return nil }

func (r *fakeProduitRepo) GetByID(id string) (*entity.Produit, error) { return r.produits[id], nil }

func (r *fakeProduitRepo) GetByCode(code string) (*entity.Produit, error) { return nil, nil }

func (r *fakeProduitRepo) GetForUpdate(id string) (*entity.Produit, error) {
	return r.produits[id], nil
}

func (r *fakeProduitRepo) Update(p *entity.Produit) error { r.produits[p.ID] = p; return nil }

func (r *fakeProduitRepo) UpdateStock(id string, stock int64) error { return nil }

func (r *fakeProduitRepo) List(recherche string, limit, offset int) ([]*entity.Produit, error) {
	return nil, nil
}

func (r *fakeProduitRepo) Count(recherche string) (int, error) { return 0, nil }

func (r *fakeProduitRepo) ListStockables() ([]*entity.Produit, error) { return nil, nil }

func (r *fakeProduitRepo) Delete(id string) error { return nil }

type fakeUniteRepo struct{}

func (r *fakeUniteRepo) Create(u *entity.UniteMesure) error { return nil }

func (r *fakeUniteRepo) GetByID(id string) (*entity.UniteMesure, error) { return nil, nil }

func (r *fakeUniteRepo) List() ([]*entity.UniteMesure, error) { return nil, nil }

func (r *fakeUniteRepo) Update(u *entity.UniteMesure) error { return nil }

func (r *fakeUniteRepo) Delete(id string) error { return nil }

func (r *fakeUniteRepo) HasProduits(id string) (bool, error) { return false, nil }

type fakeBillingTxRunner struct {
	factureRepo repository.FactureRepository
}

func (r *fakeBillingTxRunner) RunBilling(ctx context.Context, fn func(repository.FactureRepository) error) error {
	return fn(r.factureRepo)
}

func newFixtureBilling(t *testing.T) (*FactureUseCase, *fakeFactureRepo, *entity.Client, *entity.Produit) {
	t.Helper()
	factureRepo := newFakeFactureRepo()
	client := &entity.Client{
		ID:         uuid.New().String(),
		TypeClient: entity.ClientPersonne,
		Nom:        "Kabila",
		Prenom:     "Joseph",
	}
	produit := &entity.Produit{
		ID:        uuid.New().String(),
		Nom:       "Ciment gris 50kg",
		Code:      "CIMENT-GRIS",
		Stockable: true,
		TVA:       decimal.NewFromInt(20),
		PVTTC:     decimal.NewFromInt(10),
	}
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{client.ID: client}}
	produitRepo := &fakeProduitRepo{produits: map[string]*entity.Produit{produit.ID: produit}}
	uc := NewFactureUseCase(
		&fakeBillingTxRunner{factureRepo: factureRepo},
		factureRepo,
		clientRepo,
		produitRepo,
		&fakeUniteRepo{},
		nil,
	)
	return uc, factureRepo, client, produit
}

func TestCreateFacture_NumerotationEtTotal(t *testing.T) {
	uc, _, client, produit := newFixtureBilling(t)

	resp, err := uc.Create(context.Background(), dto.CreateFactureRequest{
		ClientID: client.ID,
		Lignes: []dto.LigneFactureRequest{
			{ProduitID: produit.ID, Quantite: 3, PrixUnitaire: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "F0001", resp.Numero)
	assert.Equal(t, entity.DocumentFacture, resp.TypeDocument)
	assert.Equal(t, entity.EtatEnAttente, resp.Etat)
	// 3 × 10 × 1.20 = 36
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(36)), "total = %s", resp.Total)
	require.Len(t, resp.Lignes, 1)
	assert.True(t, resp.Lignes[0].TotalHT.Equal(decimal.NewFromInt(30)))

	resp2, err := uc.Create(context.Background(), dto.CreateFactureRequest{
		ClientID: client.ID,
		Lignes: []dto.LigneFactureRequest{
			{ProduitID: produit.ID, Quantite: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "F0002", resp2.Numero)
	// prix et TVA par défaut tirés du produit : 1 × 10 × 1.20
	assert.True(t, resp2.Total.Equal(decimal.NewFromInt(12)))
}

func TestCreateFacture_Validation(t *testing.T) {
	uc, _, client, produit := newFixtureBilling(t)

	_, err := uc.Create(context.Background(), dto.CreateFactureRequest{
		ClientID: client.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateFactureRequest{
		ClientID: client.ID,
		Lignes:   []dto.LigneFactureRequest{{ProduitID: produit.ID, Quantite: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateFactureRequest{
		ClientID: uuid.New().String(),
		Lignes:   []dto.LigneFactureRequest{{ProduitID: produit.ID, Quantite: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConvertirEnAvoir_Miroir(t *testing.T) {
	uc, _, client, produit := newFixtureBilling(t)

	facture, err := uc.Create(context.Background(), dto.CreateFactureRequest{
		ClientID: client.ID,
		Lignes: []dto.LigneFactureRequest{
			{ProduitID: produit.ID, Quantite: 3, PrixUnitaire: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	avoir, err := uc.ConvertirEnAvoir(context.Background(), facture.ID)
	require.NoError(t, err)
	assert.Equal(t, "A0001", avoir.Numero)
	assert.Equal(t, entity.DocumentAvoir, avoir.TypeDocument)
	assert.Equal(t, facture.ID, avoir.FactureOriginaleID)
	require.Len(t, avoir.Lignes, 1)
	assert.Equal(t, int64(-3), avoir.Lignes[0].Quantite)
	assert.True(t, avoir.Lignes[0].PrixUnitaire.Equal(decimal.NewFromInt(10)))
	assert.True(t, avoir.Lignes[0].TVA.Equal(decimal.NewFromInt(20)))
	// miroir exact : −(3 × 10 × 1.20) = −36
	assert.True(t, avoir.Total.Equal(decimal.NewFromInt(-36)), "total avoir = %s", avoir.Total)

	// un avoir ne se convertit pas
	_, err = uc.ConvertirEnAvoir(context.Background(), avoir.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListFactures_Stats(t *testing.T) {
	uc, _, client, produit := newFixtureBilling(t)

	facture, err := uc.Create(context.Background(), dto.CreateFactureRequest{
		ClientID: client.ID,
		Lignes: []dto.LigneFactureRequest{
			{ProduitID: produit.ID, Quantite: 3, PrixUnitaire: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	_, err = uc.ConvertirEnAvoir(context.Background(), facture.ID)
	require.NoError(t, err)

	resp, err := uc.List(repository.FiltresFacture{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Page.Total)
	assert.Equal(t, 1, resp.Stats.NbFactures)
	assert.Equal(t, 1, resp.Stats.NbAvoirs)
	assert.True(t, resp.Stats.TotalFacture.Equal(decimal.NewFromInt(36)))
	assert.True(t, resp.Stats.TotalAvoir.Equal(decimal.NewFromInt(-36)))
	assert.True(t, resp.Stats.TotalNet.IsZero(), "net = %s", resp.Stats.TotalNet)
}

func TestUpdateFacture_RemplaceLignes(t *testing.T) {
	uc, repo, client, produit := newFixtureBilling(t)

	facture, err := uc.Create(context.Background(), dto.CreateFactureRequest{
		ClientID: client.ID,
		Lignes: []dto.LigneFactureRequest{
			{ProduitID: produit.ID, Quantite: 3, PrixUnitaire: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	etat := entity.EtatPayee
	resp, err := uc.Update(context.Background(), facture.ID, dto.UpdateFactureRequest{
		Etat: &etat,
		Lignes: []dto.LigneFactureRequest{
			{ProduitID: produit.ID, Quantite: 5, PrixUnitaire: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EtatPayee, resp.Etat)
	// 5 × 10 × 1.20 = 60
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(60)))

	lignes, err := repo.GetLignes(facture.ID)
	require.NoError(t, err)
	require.Len(t, lignes, 1)
	assert.Equal(t, int64(5), lignes[0].Quantite)
}
