package services

import (
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

// GenerationTracker owns the staleness flag between a contract's
// rendered content and its last generated artifact. It only mutates the
// in-memory row; the caller persists it in the same transaction as the
// content or path write, so flag and content can never diverge.
type GenerationTracker interface {
	// MarkModified flags the contract stale, but only once an artifact
	// exists to be stale against.
	MarkModified(contract *types.Contract)
	// MarkGenerated records a fresh artifact and clears staleness.
	MarkGenerated(contract *types.Contract, artifactPath string)
}

type generationTracker struct {
	log *logger.Logger
}

func NewGenerationTracker(log *logger.Logger) GenerationTracker {
	return &generationTracker{log: log.With("service", "GenerationTracker")}
}

func (gt *generationTracker) MarkModified(contract *types.Contract) {
	if contract == nil || contract.GeneratedPDFPath == nil {
		return
	}
	contract.ModifiedAfterGeneration = true
}

func (gt *generationTracker) MarkGenerated(contract *types.Contract, artifactPath string) {
	if contract == nil {
		return
	}
	contract.GeneratedPDFPath = &artifactPath
	contract.ModifiedAfterGeneration = false
}
