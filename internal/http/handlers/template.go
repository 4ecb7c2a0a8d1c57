package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/eventdesk/eventdesk-backend/internal/http/response"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/services"
)

type TemplateHandler struct {
	log       *logger.Logger
	templates services.TemplateService
}

func NewTemplateHandler(log *logger.Logger, templates services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		log:       log.With("handler", "TemplateHandler"),
		templates: templates,
	}
}

func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": templates})
}
