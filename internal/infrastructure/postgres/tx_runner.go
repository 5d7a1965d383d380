package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmkadima/facturier-api/internal/application/billing"
	appstock "github.com/jmkadima/facturier-api/internal/application/stock"
	"github.com/jmkadima/facturier-api/internal/application/supply"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

var _ appstock.TxRunner = (*TxRunner)(nil)
var _ supply.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL, avec des
// repositories liés à la transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transaction du grand livre de stock : produit + mouvements.
func (r *TxRunner) Run(ctx context.Context, fn func(
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProduitRepository(tx), NewMouvementStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSupply transaction de réception d'approvisionnement : entrées de stock et
// changement de statut ensemble.
func (r *TxRunner) RunSupply(ctx context.Context, fn func(
	produitRepo repository.ProduitRepository,
	mouvementRepo repository.MouvementStockRepository,
	approRepo repository.ApprovisionnementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProduitRepository(tx), NewMouvementStockRepository(tx), NewApprovisionnementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling transaction de facturation : en-tête, lignes et numérotation.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	factureRepo repository.FactureRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewFactureRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
