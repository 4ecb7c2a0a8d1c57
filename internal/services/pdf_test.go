package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/platform/renderer"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

type fakeRendererClient struct {
	result *renderer.RenderResult
	err    error
	calls  int
	last   renderer.RenderRequest
}

func (f *fakeRendererClient) Render(ctx context.Context, req renderer.RenderRequest) (*renderer.RenderResult, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func contractWithContent(t *testing.T) *types.Contract {
	t.Helper()
	doc := types.Document{Kind: types.DocLegacy, Legacy: "<p>Umowa</p>"}
	content, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return &types.Contract{ID: uuid.New(), EventID: uuid.New(), Status: types.ContractStatusDraft, Content: content}
}

func newTestPdfService(t *testing.T, contracts *fakeContractService, repo *fakeContractRepo, rc *fakeRendererClient) PdfService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewPdfService(nil, log, contracts, repo, NewGenerationTracker(log), rc)
}

func TestGenerateSuccessSetsPathAndClearsStaleness(t *testing.T) {
	contract := contractWithContent(t)
	contract.ModifiedAfterGeneration = true
	repo := &fakeContractRepo{}
	rc := &fakeRendererClient{result: &renderer.RenderResult{ArtifactPath: "contracts/out.pdf"}}
	ps := newTestPdfService(t, &fakeContractService{current: contract}, repo, rc)

	got, err := ps.Generate(actorContext(), contract.EventID, "body { margin: 0; }")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.GeneratedPDFPath == nil || *got.GeneratedPDFPath != "contracts/out.pdf" {
		t.Fatalf("artifact path: got=%v", got.GeneratedPDFPath)
	}
	if got.ModifiedAfterGeneration {
		t.Fatalf("staleness flag not cleared by successful generation")
	}
	if repo.saveCalls != 1 {
		t.Fatalf("save calls: want=1 got=%d", repo.saveCalls)
	}
	if !strings.Contains(rc.last.HTML, "<!DOCTYPE html>") || !strings.Contains(rc.last.HTML, "<p>Umowa</p>") {
		t.Fatalf("standalone document not assembled: %q", rc.last.HTML)
	}
}

func TestGenerateFailureCommitsNothing(t *testing.T) {
	contract := contractWithContent(t)
	repo := &fakeContractRepo{}
	rc := &fakeRendererClient{err: errors.New("renderer unavailable")}
	ps := newTestPdfService(t, &fakeContractService{current: contract}, repo, rc)

	_, err := ps.Generate(actorContext(), contract.EventID, "")
	if err == nil {
		t.Fatalf("Generate: expected error when renderer fails")
	}
	if contract.GeneratedPDFPath != nil {
		t.Fatalf("artifact path set despite failure: %v", *contract.GeneratedPDFPath)
	}
	if contract.ModifiedAfterGeneration {
		t.Fatalf("staleness flag touched despite failure")
	}
	if repo.saveCalls != 0 {
		t.Fatalf("contract persisted despite failure: saves=%d", repo.saveCalls)
	}
}

func TestGeneratePropagatesMissingTemplate(t *testing.T) {
	orCreateErr := errors.New("no contract template available for event")
	ps := newTestPdfService(t, &fakeContractService{orCreateErr: orCreateErr}, &fakeContractRepo{}, &fakeRendererClient{})

	_, err := ps.Generate(actorContext(), uuid.New(), "")
	if !errors.Is(err, orCreateErr) {
		t.Fatalf("missing-template error not propagated: got %v", err)
	}
}

func TestGenerateRequiresActor(t *testing.T) {
	ps := newTestPdfService(t, &fakeContractService{}, &fakeContractRepo{}, &fakeRendererClient{})

	_, err := ps.Generate(context.Background(), uuid.New(), "")
	if err == nil {
		t.Fatalf("Generate: expected error without actor")
	}
}

func TestAssembleStandaloneHTMLPagedKeepsPages(t *testing.T) {
	doc := types.Document{Kind: types.DocPaged, Pages: []string{"<p>1</p>", "<p>2</p>"}}
	html := assembleStandaloneHTML(doc, "")
	if got := strings.Count(html, `<div class="contract-page">`); got != 2 {
		t.Fatalf("page wrappers: want=2 got=%d", got)
	}
}
