package services

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

// OfferTableBuilder renders one offer line-item list in the two shapes
// templates may use: a numbered HTML list and a tabular layout. Both
// are produced from the same input so a template can pick either.
type OfferTableBuilder interface {
	BuildList(items []*types.OfferItem) string
	BuildTable(items []*types.OfferItem) string
}

type offerTableBuilder struct {
	log     *logger.Logger
	printer *message.Printer
}

func NewOfferTableBuilder(log *logger.Logger) OfferTableBuilder {
	return &offerTableBuilder{
		log:     log.With("service", "OfferTableBuilder"),
		printer: message.NewPrinter(language.Polish),
	}
}

func (b *offerTableBuilder) BuildList(items []*types.OfferItem) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<ul>")
	for i, item := range items {
		if item == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("<li>%d. %s (Ilość: %d)</li>", i+1, html.EscapeString(item.Name), item.Quantity))
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func (b *offerTableBuilder) BuildTable(items []*types.OfferItem) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<table class="offer-items"><thead><tr><th>Lp.</th><th>Nazwa</th><th>Ilość</th><th>Cena jedn.</th></tr></thead><tbody>`)
	for i, item := range items {
		if item == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("<tr><td>%d</td><td>%s</td><td>%d</td><td>%s</td></tr>",
			i+1, html.EscapeString(item.Name), item.Quantity, b.printer.Sprintf("%.2f zł", item.UnitPrice)))
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}
