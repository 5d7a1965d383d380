package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jmkadima/facturier-api/internal/domain/entity"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction incluant le repository de
// facturation : en-tête et lignes sont committées ou annulées ensemble, et le
// numéro est attribué sous la même transaction.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		factureRepo repository.FactureRepository,
	) error) error
}

// LignePourPDF ligne de facture enrichie pour le rendu PDF.
type LignePourPDF struct {
	ProduitNom   string
	ProduitCode  string
	UniteSymbole string
	Quantite     int64
	PrixUnitaire decimal.Decimal
	TVA          decimal.Decimal
	TotalTTC     decimal.Decimal
}

// FacturePDFGenerator rend une facture en PDF.
type FacturePDFGenerator interface {
	GenererFacturePDF(ctx context.Context, facture *entity.Facture, client *entity.Client, lignes []LignePourPDF) ([]byte, error)
}
