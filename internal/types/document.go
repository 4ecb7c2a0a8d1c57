package types

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// VariableMap is the resolved key→value substitution set. It is never
// persisted directly; only a rendered Document snapshot lands on the
// Contract row.
type VariableMap map[string]string

type DocumentKind string

const (
	DocLegacy DocumentKind = "legacy"
	DocPaged  DocumentKind = "paged"
)

// Document is the tagged variant over the two template shapes, resolved
// once at load instead of re-inspecting raw columns at every call site.
// For DocPaged, Settings travels with the pages; substitution never
// changes the page count.
type Document struct {
	Kind     DocumentKind  `json:"kind"`
	Legacy   string        `json:"legacy,omitempty"`
	Pages    []string      `json:"pages,omitempty"`
	Settings *PageSettings `json:"settings,omitempty"`
}

// DocumentFromTemplate picks the authoritative source: paginated pages
// when present, otherwise the legacy blob.
func DocumentFromTemplate(t *ContractTemplate) (Document, error) {
	if t == nil {
		return Document{}, fmt.Errorf("template is nil")
	}
	ps, err := t.DecodePageSettings()
	if err != nil {
		return Document{}, fmt.Errorf("decode page settings for template %s: %w", t.ID, err)
	}
	if ps != nil && len(ps.Pages) > 0 {
		settings := *ps
		pages := make([]string, len(ps.Pages))
		copy(pages, ps.Pages)
		settings.Pages = nil
		return Document{Kind: DocPaged, Pages: pages, Settings: &settings}, nil
	}
	if t.LegacyContent != nil {
		return Document{Kind: DocLegacy, Legacy: *t.LegacyContent}, nil
	}
	return Document{}, fmt.Errorf("template %s has no content", t.ID)
}

func (d Document) Encode() (datatypes.JSON, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func DecodeDocument(raw datatypes.JSON) (Document, error) {
	if len(raw) == 0 {
		return Document{}, fmt.Errorf("empty document payload")
	}
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if d.Kind != DocLegacy && d.Kind != DocPaged {
		return Document{}, fmt.Errorf("unknown document kind %q", d.Kind)
	}
	return d, nil
}

// PageCount reports 1 for legacy documents.
func (d Document) PageCount() int {
	if d.Kind == DocPaged {
		return len(d.Pages)
	}
	return 1
}
