package services

import (
	"reflect"
	"testing"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

func newTestRenderService(t *testing.T) RenderService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewRenderService(log, DefaultRenderDefaults())
}

func TestRenderLegacySubstitution(t *testing.T) {
	rs := newTestRenderService(t)
	doc := types.Document{Kind: types.DocLegacy, Legacy: "Umowa dla {{contact_full_name}} na {{event_name}}."}
	vars := types.VariableMap{"contact_full_name": "Jan Kowalski", "event_name": "Gala"}

	got := rs.Render(doc, vars)
	want := "Umowa dla Jan Kowalski na Gala."
	if got.Legacy != want {
		t.Fatalf("legacy render: want=%q got=%q", want, got.Legacy)
	}
}

func TestRenderUnresolvedTokensLeftVerbatim(t *testing.T) {
	rs := newTestRenderService(t)
	doc := types.Document{Kind: types.DocLegacy, Legacy: "Hello {{missing_key}}"}
	got := rs.Render(doc, types.VariableMap{"other": "x"})
	if got.Legacy != "Hello {{missing_key}}" {
		t.Fatalf("unresolved token rewritten: got=%q", got.Legacy)
	}
}

func TestRenderPagedPreservesPageCount(t *testing.T) {
	rs := newTestRenderService(t)
	doc := types.Document{
		Kind:  types.DocPaged,
		Pages: []string{"Strona 1: {{event_name}}", "Strona 2", "Strona 3: {{budget}}"},
	}
	got := rs.Render(doc, types.VariableMap{"event_name": "Gala", "budget": "500,00 zł"})
	if got.PageCount() != 3 {
		t.Fatalf("page count changed: want=3 got=%d", got.PageCount())
	}
	if got.Pages[0] != "Strona 1: Gala" {
		t.Fatalf("page 1: got=%q", got.Pages[0])
	}
	if got.Pages[2] != "Strona 3: 500,00 zł" {
		t.Fatalf("page 3: got=%q", got.Pages[2])
	}
}

func TestRenderIdempotentOnceResolved(t *testing.T) {
	rs := newTestRenderService(t)
	vars := types.VariableMap{"event_name": "Gala", "contact_full_name": "Jan Kowalski"}
	doc := types.Document{
		Kind:  types.DocPaged,
		Pages: []string{"{{event_name}} — {{contact_full_name}}"},
	}
	once := rs.Render(doc, vars)
	twice := rs.Render(once, vars)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("render not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestRenderFillsSettingsDefaults(t *testing.T) {
	rs := newTestRenderService(t)
	lineHeight := 2.0
	doc := types.Document{
		Kind:     types.DocPaged,
		Pages:    []string{"p"},
		Settings: &types.PageSettings{LineHeight: &lineHeight},
	}
	got := rs.Render(doc, nil)
	if got.Settings == nil {
		t.Fatalf("settings dropped")
	}
	if got.Settings.LineHeight == nil || *got.Settings.LineHeight != 2.0 {
		t.Fatalf("explicit line height overridden: got=%v", got.Settings.LineHeight)
	}
	if got.Settings.LogoScale == nil || *got.Settings.LogoScale != 80 {
		t.Fatalf("logo scale default: want=80 got=%v", got.Settings.LogoScale)
	}
	if got.Settings.LogoPositionX == nil || *got.Settings.LogoPositionX != 50 {
		t.Fatalf("logo position x default: want=50 got=%v", got.Settings.LogoPositionX)
	}
	if got.Settings.FooterLogoScale == nil || *got.Settings.FooterLogoScale != 100 {
		t.Fatalf("footer logo scale default: want=100 got=%v", got.Settings.FooterLogoScale)
	}
}
