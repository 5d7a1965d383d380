// Package pdf génère la représentation imprimable d'une facture ou d'un avoir.
//
// Mise en page A4 :
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: type de document + numéro  │  date                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENT: nom, adresse, NIF, contact                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qté | Désignation | P.U. | TVA | Total TTC           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX: Total HT / TVA / TOTAL TTC                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jmkadima/facturier-api/internal/application/billing"
	"github.com/jmkadima/facturier-api/internal/domain/entity"
)

var _ appbilling.FacturePDFGenerator = (*MarotoFactureGenerator)(nil)

var (
	couleurPrimaire = &props.Color{Red: 0, Green: 70, Blue: 127}
	couleurGrise    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoFactureGenerator implémente billing.FacturePDFGenerator avec Maroto v2.
type MarotoFactureGenerator struct{}

// NewMarotoFactureGenerator construit le générateur.
func NewMarotoFactureGenerator() *MarotoFactureGenerator { return &MarotoFactureGenerator{} }

// GenererFacturePDF génère le PDF et renvoie ses bytes.
func (g *MarotoFactureGenerator) GenererFacturePDF(
	_ context.Context,
	facture *entity.Facture,
	client *entity.Client,
	lignes []appbilling.LignePourPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titreDocument(facture)+" "+facture.Numero, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(enTeteRow(facture))
	m.AddRows(line.NewRow(1, props.Line{Color: couleurPrimaire, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: couleurPrimaire, Thickness: 0.3}))

	m.AddRows(enTeteTableRow())
	for _, r := range lignesRows(lignes) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: couleurPrimaire, Thickness: 0.3}))
	m.AddRows(totauxRow(facture, lignes))

	if facture.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRow(facture.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer document: %w", err)
	}
	return doc.GetBytes(), nil
}

func titreDocument(f *entity.Facture) string {
	if f.TypeDocument == entity.DocumentAvoir {
		return "AVOIR"
	}
	return "FACTURE"
}

// enTeteRow : type de document + numéro (gauche), date et état (droite).
func enTeteRow(facture *entity.Facture) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(titreDocument(facture), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: couleurPrimaire, Top: 1,
			}),
			text.New("N° "+facture.Numero, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Date : "+facture.Date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: couleurGrise,
			}),
			text.New("État : "+facture.Etat, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: couleurGrise,
			}),
		),
	)
}

// clientRow : bloc client (nom, adresse, NIF, contact).
func clientRow(client *entity.Client) core.Row {
	nom := "—"
	adresse := "—"
	contact := "—"
	if client != nil {
		nom = client.DisplayName()
		adresse = adresseClient(client)
		contact = fmt.Sprintf("NIF : %s   |   Tél : %s   |   Email : %s",
			ouTiret(client.NIF), ouTiret(client.Telephone), ouTiret(client.Email))
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: couleurPrimaire, Top: 1,
			}),
			text.New(nom, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(adresse, props.Text{Size: 8, Top: 11, Color: couleurGrise}),
			text.New(contact, props.Text{Size: 8, Top: 15, Color: couleurGrise}),
		),
	)
}

// enTeteTableRow : en-tête de la table des lignes.
func enTeteTableRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: couleurPrimaire, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qté", 1, align.Center),
		h("Désignation", 5, align.Left),
		h("P.U.", 2, align.Right),
		h("TVA%", 1, align.Center),
		h("Total TTC", 3, align.Right),
	)
}

// lignesRows : une ligne de table par ligne de facture. Les quantités d'un
// avoir sont négatives et s'affichent telles quelles.
func lignesRows(lignes []appbilling.LignePourPDF) []core.Row {
	result := make([]core.Row, 0, len(lignes))
	for _, l := range lignes {
		designation := l.ProduitNom
		if l.UniteSymbole != "" {
			designation = fmt.Sprintf("%s (%s)", l.ProduitNom, l.UniteSymbole)
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantite),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				designation,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMontant(l.PrixUnitaire),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.TVA.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatMontant(l.TotalTTC),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totauxRow : bloc des totaux aligné à droite.
func totauxRow(facture *entity.Facture, lignes []appbilling.LignePourPDF) core.Row {
	totalHT := decimal.Zero
	for _, l := range lignes {
		totalHT = totalHT.Add(decimal.NewFromInt(l.Quantite).Mul(l.PrixUnitaire))
	}
	totalTVA := facture.Total.Sub(totalHT)

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Total HT :"),
			label("TVA :"),
			text.New("TOTAL TTC :", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: couleurPrimaire, Right: 2,
			}),
		),
		col.New(4).Add(
			value(formatMontant(totalHT)),
			value(formatMontant(totalTVA)),
			text.New(formatMontant(facture.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: couleurPrimaire, Right: 1,
			}),
		),
	)
}

func notesRow(notes string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Notes", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: couleurPrimaire, Top: 1,
			}),
			text.New(notes, props.Text{Size: 8, Top: 6, Color: couleurGrise}),
		),
	)
}

func adresseClient(c *entity.Client) string {
	parts := make([]string, 0, 3)
	if c.Quartier != "" {
		parts = append(parts, "Quartier "+c.Quartier)
	}
	if c.Avenue != "" {
		parts = append(parts, "Av. "+c.Avenue)
	}
	if c.Numero != "" {
		parts = append(parts, "N° "+c.Numero)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}

func ouTiret(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// formatMontant formate un montant avec séparateur de milliers (1 234 567,89).
func formatMontant(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	entier := parts[0]
	var b strings.Builder
	for i, r := range entier {
		if i > 0 && (len(entier)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}
