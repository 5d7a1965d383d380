package supply

import (
	"context"

	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction couvrant les trois
// repositories de l'approvisionnement : la réception écrit les entrées de
// stock et le changement de statut atomiquement.
type TxRunner interface {
	RunSupply(ctx context.Context, fn func(
		produitRepo repository.ProduitRepository,
		mouvementRepo repository.MouvementStockRepository,
		approRepo repository.ApprovisionnementRepository,
	) error) error
}
