// Package pdf renders invoices as PDF documents with maroto.
package pdf

import (
	"fmt"

	"github.com/diewo77/go-facturas/i18n"
	"github.com/diewo77/go-facturas/internal/models"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// Placeholder replaces a missing CUIT or email.
const Placeholder = "-"

// InvoiceData is the flattened, already formatted content of the document.
type InvoiceData struct {
	Number      string
	Date        string // DD/MM/YYYY
	Year        int
	ClientName  string
	ClientTaxID string
	ClientEmail string
	Items       []InvoiceItem
	Subtotal    string
	Tax         string
	Total       string
}

type InvoiceItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// FromInvoice maps a stored invoice, with client and items loaded, to InvoiceData.
func FromInvoice(inv *models.Invoice) InvoiceData {
	data := InvoiceData{
		Number:      inv.Number,
		Date:        inv.FormattedDate(),
		Year:        inv.Year,
		ClientName:  inv.ClientName(),
		ClientTaxID: Placeholder,
		ClientEmail: Placeholder,
		Subtotal:    money(inv.Subtotal),
		Tax:         money(inv.Tax),
		Total:       money(inv.Total),
	}
	if inv.Client != nil {
		data.ClientTaxID = inv.Client.TaxIDOr(Placeholder)
		data.ClientEmail = inv.Client.EmailOr(Placeholder)
	}
	for _, it := range inv.Items {
		data.Items = append(data.Items, InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			UnitPrice:   money(it.UnitPrice),
			Amount:      money(it.Amount),
		})
	}
	return data
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

// InvoicePDF renders the document and returns its bytes. Labels follow lang.
func InvoicePDF(data InvoiceData, lang string) ([]byte, error) {
	t := func(code string) string { return i18n.T(lang, code) }

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()
	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, t("invoice")+" "+data.Number, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	body := props.Text{Size: 11}
	m.AddRow(7, text.NewCol(12, t("date")+": "+data.Date, body))
	m.AddRow(7, text.NewCol(12, fmt.Sprintf("%s: %d", t("year"), data.Year), body))
	m.AddRow(7,
		text.NewCol(7, t("client")+": "+data.ClientName, body),
		text.NewCol(5, t("tax_id")+": "+data.ClientTaxID, body),
	)
	m.AddRow(7, text.NewCol(12, t("email")+": "+data.ClientEmail, body))

	m.AddRow(12, text.NewCol(12, t("items")+":", props.Text{Size: 11, Style: fontstyle.Bold, Top: 4}))
	head := props.Text{Size: 9, Style: fontstyle.Bold}
	headRight := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	m.AddRow(7,
		text.NewCol(6, t("description"), head),
		text.NewCol(2, t("quantity"), headRight),
		text.NewCol(2, t("unit_price"), headRight),
		text.NewCol(2, t("amount"), headRight),
	)
	m.AddRow(1, line.NewCol(12))

	cell := props.Text{Size: 9}
	cellRight := props.Text{Size: 9, Align: align.Right}
	for _, it := range data.Items {
		m.AddRow(7,
			text.NewCol(6, "- "+it.Description, cell),
			text.NewCol(2, it.Quantity, cellRight),
			text.NewCol(2, "x "+it.UnitPrice, cellRight),
			text.NewCol(2, "= "+it.Amount, cellRight),
		)
	}

	m.AddRow(6, col.New(12))
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, t("subtotal")+":", body),
		text.NewCol(2, data.Subtotal, props.Text{Size: 11, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, t("tax")+":", body),
		text.NewCol(2, data.Tax, props.Text{Size: 11, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "TOTAL:", props.Text{Size: 12, Style: fontstyle.Bold}),
		text.NewCol(2, data.Total, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
	)
	// underline under the total
	m.AddRow(1, col.New(8), line.NewCol(4))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
