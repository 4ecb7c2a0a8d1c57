package services

import (
	"strings"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

// RenderService substitutes resolved variables into a document.
// Substitution is a literal token scan: {{key}} occurrences are replaced
// with the mapped value, unresolved tokens stay verbatim and nothing is
// escaped (template content is caller-trusted). Rendering an already
// fully-resolved document is a no-op.
type RenderService interface {
	Render(doc types.Document, vars types.VariableMap) types.Document
}

type renderService struct {
	log      *logger.Logger
	defaults RenderDefaults
}

func NewRenderService(log *logger.Logger, defaults RenderDefaults) RenderService {
	return &renderService{
		log:      log.With("service", "RenderService"),
		defaults: defaults,
	}
}

func (rs *renderService) Render(doc types.Document, vars types.VariableMap) types.Document {
	switch doc.Kind {
	case types.DocPaged:
		out := types.Document{Kind: types.DocPaged}
		out.Pages = make([]string, len(doc.Pages))
		for i, page := range doc.Pages {
			out.Pages[i] = substitute(page, vars)
		}
		out.Settings = rs.resolveSettings(doc.Settings)
		return out
	default:
		return types.Document{Kind: types.DocLegacy, Legacy: substitute(doc.Legacy, vars)}
	}
}

func substitute(content string, vars types.VariableMap) string {
	for key, value := range vars {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content
}

// resolveSettings carries the template's layout forward, filling any
// missing field with its default so downstream consumers never see a
// partially-specified layout.
func (rs *renderService) resolveSettings(in *types.PageSettings) *types.PageSettings {
	out := types.PageSettings{}
	if in != nil {
		out = *in
	}
	if out.LogoScale == nil {
		v := rs.defaults.LogoScale
		out.LogoScale = &v
	}
	if out.LogoPositionX == nil {
		v := rs.defaults.LogoPositionX
		out.LogoPositionX = &v
	}
	if out.LogoPositionY == nil {
		v := rs.defaults.LogoPositionY
		out.LogoPositionY = &v
	}
	if out.LineHeight == nil {
		v := rs.defaults.LineHeight
		out.LineHeight = &v
	}
	if out.FooterLogoScale == nil {
		v := rs.defaults.FooterLogoScale
		out.FooterLogoScale = &v
	}
	return &out
}
