package stock

import (
	"context"

	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de BD, en lui passant des
// repositories liés à cette transaction. Garantit l'atomicité du grand livre :
// mise à jour du stock du produit et insertion du mouvement committées ou
// annulées ensemble.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		produitRepo repository.ProduitRepository,
		mouvementRepo repository.MouvementStockRepository,
	) error) error
}
