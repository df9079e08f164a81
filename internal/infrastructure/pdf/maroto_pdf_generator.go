// Package pdf genera el informe imprimible del tablero financiero.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período        │  fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CASCADA: beneficio → ... → POSICIÓN NETA                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: canales                                             │
//	│  TABLA: proveedores (a entregar)                            │
//	│  TABLA: revendedores (comisiones)                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/merchbydz/backoffice/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorNegative = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator lang define el formato de los montos (separadores de miles y decimales).
func NewMarotoPDFGenerator(lang language.Tag) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(lang)}
}

// DashboardPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) DashboardPDF(ctx context.Context, rep ports.DashboardReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(rep.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.waterfallRows(rep)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Rentabilité par canal"))
	m.AddRows(tableHeaderRow([]string{"Canal", "Commandes", "Chiffre", "Production", "Commission", "Retours", "Marketing", "Net"}))
	for _, c := range rep.Channels {
		m.AddRows(g.tableRow([]string{
			c.Label, fmt.Sprint(c.Orders),
		}, c.Revenue, c.Production, c.Commission, c.Returns, c.Marketing, c.Net))
	}

	if len(rep.Suppliers) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(sectionTitle("Fournisseurs : à donner"))
		m.AddRows(tableHeaderRow([]string{"Catégorie", "Fournisseur", "Commandes", "Dû", "Payé", "À donner"}))
		for _, s := range rep.Suppliers {
			m.AddRows(g.tableRow([]string{
				string(s.Category), s.Supplier, fmt.Sprint(s.Orders),
			}, s.Attributed, s.Paid, s.MustGive))
		}
	}

	if len(rep.Sellers) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(sectionTitle("Revendeurs : commissions"))
		m.AddRows(tableHeaderRow([]string{"Revendeur", "Commandes", "Gagné", "En attente", "Payé", "Reste"}))
		for _, s := range rep.Sellers {
			m.AddRows(g.tableRow([]string{
				s.Seller, fmt.Sprint(s.Orders),
			}, s.Earned, s.Pending, s.Paid, s.Due))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(rep ports.DashboardReport) core.Row {
	period := "Toute la période"
	switch p := rep.Summary.Period; {
	case p.StartDate != "" && p.EndDate != "":
		period = "Du " + p.StartDate + " au " + p.EndDate
	case p.StartDate != "":
		period = "Depuis le " + p.StartDate
	case p.EndDate != "":
		period = "Jusqu'au " + p.EndDate
	}

	return row.New(18).Add(
		col.New(8).Add(
			text.New(rep.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Généré le "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d commandes", rep.Summary.Orders), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// waterfallRows la cascada de la posición neta, con el signo de cada término.
func (g *MarotoPDFGenerator) waterfallRows(rep ports.DashboardReport) []core.Row {
	s := rep.Summary
	steps := []struct {
		label string
		sign  string
		value decimal.Decimal
	}{
		{"Bénéfice encaissé", "+", s.Recognized},
		{"Bénéfice attendu", "+", s.Expected},
		{"Offres (net)", "+", s.AdHocNet},
		{"Pertes (retours)", "−", s.Loss},
		{"Charges", "−", s.Charges},
		{"Marketing", "−", s.Marketing},
	}

	rows := make([]core.Row, 0, len(steps)+2)
	for _, st := range steps {
		rows = append(rows, row.New(6).Add(
			col.New(2),
			col.New(5).Add(text.New(st.sign+" "+st.label, props.Text{Size: 9, Align: align.Left, Top: 1})),
			col.New(3).Add(text.New(g.money(st.value, rep.Currency), props.Text{Size: 9, Align: align.Right, Top: 1})),
			col.New(2),
		))
	}

	netColor := colorPrimary
	if s.NetPosition.IsNegative() {
		netColor = colorNegative
	}
	rows = append(rows, row.New(9).Add(
		col.New(2),
		col.New(5).Add(text.New("POSITION NETTE", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: netColor, Top: 2,
		})),
		col.New(3).Add(text.New(g.money(s.NetPosition, rep.Currency), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: netColor, Top: 2,
		})),
		col.New(2),
	))
	if !s.Potential.IsZero() {
		rows = append(rows, row.New(6).Add(
			col.New(2),
			col.New(8).Add(text.New("Bénéfice potentiel en livraison (hors position) : "+g.money(s.Potential, rep.Currency),
				props.Text{Size: 8, Color: colorGray, Top: 1})),
			col.New(2),
		))
	}
	return rows
}

func sectionTitle(title string) core.Row {
	return text.NewRow(8, title, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
	})
}

// tableHeaderRow cabecera con fondo azul; las columnas se reparten en la grilla de 12.
func tableHeaderRow(labels []string) core.Row {
	sizes := columnSizes(len(labels))
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow columnas de texto seguidas de montos.
func (g *MarotoPDFGenerator) tableRow(labels []string, amounts ...decimal.Decimal) core.Row {
	sizes := columnSizes(len(labels) + len(amounts))
	cols := make([]core.Col, 0, len(sizes))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1})))
	}
	for j, v := range amounts {
		style := props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1}
		if v.IsNegative() {
			style.Color = colorNegative
		}
		cols = append(cols, col.New(sizes[len(labels)+j]).Add(text.New(g.money(v, ""), style)))
	}
	return row.New(6).Add(cols...)
}

// columnSizes reparte 12 columnas; el sobrante va a la primera (etiqueta).
func columnSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	sizes := make([]int, n)
	base := 12 / n
	if base == 0 {
		base = 1
	}
	for i := range sizes {
		sizes[i] = base
	}
	if rest := 12 - base*n; rest > 0 {
		sizes[0] += rest
	}
	return sizes
}

// money formatea con separadores del idioma configurado y 2 decimales.
func (g *MarotoPDFGenerator) money(v decimal.Decimal, currency string) string {
	f, _ := v.Round(2).Float64()
	s := g.printer.Sprint(number.Decimal(f, number.Scale(2)))
	if currency != "" {
		s += " " + currency
	}
	return s
}
