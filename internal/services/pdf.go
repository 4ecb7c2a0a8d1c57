package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk-backend/internal/platform/apierr"
	"github.com/eventdesk/eventdesk-backend/internal/platform/ctxutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/platform/renderer"
	"github.com/eventdesk/eventdesk-backend/internal/repos"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

// PdfService coordinates artifact generation: it assembles a standalone
// HTML document from the contract's rendered content and hands it to
// the external renderer. The artifact path and staleness flag only move
// after the renderer confirms success; a failed call commits nothing.
type PdfService interface {
	Generate(ctx context.Context, eventID uuid.UUID, css string) (*types.Contract, error)
}

type pdfService struct {
	db           *gorm.DB
	log          *logger.Logger
	contracts    ContractService
	contractRepo repos.ContractRepo
	tracker      GenerationTracker
	renderer     renderer.Client
}

func NewPdfService(db *gorm.DB, log *logger.Logger, contracts ContractService, contractRepo repos.ContractRepo, tracker GenerationTracker, rendererClient renderer.Client) PdfService {
	return &pdfService{
		db:           db,
		log:          log.With("service", "PdfService"),
		contracts:    contracts,
		contractRepo: contractRepo,
		tracker:      tracker,
		renderer:     rendererClient,
	}
}

func (ps *pdfService) Generate(ctx context.Context, eventID uuid.UUID, css string) (*types.Contract, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.PermissionDenied(fmt.Errorf("no actor on request"))
	}

	contract, err := ps.contracts.GetOrCreate(ctx, eventID)
	if err != nil {
		return nil, err
	}

	doc, err := types.DecodeDocument(contract.Content)
	if err != nil {
		return nil, apierr.Validation(fmt.Errorf("contract %s has no renderable content: %w", contract.ID, err))
	}

	html := assembleStandaloneHTML(doc, css)

	result, err := ps.renderer.Render(ctx, renderer.RenderRequest{
		EventID:    eventID,
		ContractID: contract.ID,
		HTML:       html,
		CSS:        css,
		ActorID:    rd.ActorID,
	})
	if err != nil {
		ps.log.Warn("PDF generation failed", "contract_id", contract.ID, "error", err)
		return nil, apierr.Upstream(fmt.Errorf("render contract %s: %w", contract.ID, err))
	}

	ps.tracker.MarkGenerated(contract, result.ArtifactPath)
	if err := ps.save(ctx, contract); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("persist generated artifact path: %w", err))
	}

	ps.log.Info("PDF generated", "contract_id", contract.ID, "artifact_path", result.ArtifactPath)
	return contract, nil
}

func (ps *pdfService) save(ctx context.Context, contract *types.Contract) error {
	if ps.db == nil {
		_, err := ps.contractRepo.Save(dbctx.Context{Ctx: ctx}, contract)
		return err
	}
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ps.contractRepo.Save(dbctx.Context{Ctx: ctx, Tx: tx}, contract)
		return err
	})
}

// assembleStandaloneHTML wraps the rendered fragment in a full document
// the renderer can rasterize without further context. Paged documents
// keep one wrapper div per page so the page count survives into print
// layout.
func assembleStandaloneHTML(doc types.Document, css string) string {
	var body strings.Builder
	switch doc.Kind {
	case types.DocPaged:
		for _, page := range doc.Pages {
			body.WriteString(`<div class="contract-page">`)
			body.WriteString(page)
			body.WriteString("</div>\n")
		}
	default:
		body.WriteString(doc.Legacy)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"pl\">\n<head>\n<meta charset=\"utf-8\">\n")
	if strings.TrimSpace(css) != "" {
		sb.WriteString("<style>\n")
		sb.WriteString(css)
		sb.WriteString("\n</style>\n")
	}
	if doc.Kind == types.DocPaged && doc.Settings != nil && doc.Settings.LineHeight != nil {
		sb.WriteString(fmt.Sprintf("<style>.contract-page { line-height: %.2f; }</style>\n", *doc.Settings.LineHeight))
	}
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(body.String())
	sb.WriteString("\n</body>\n</html>")
	return sb.String()
}
