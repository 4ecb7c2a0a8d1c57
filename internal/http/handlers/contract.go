package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/http/response"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/services"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

// ContractHandler carries every contract-scoped route. All event-scoped
// routes address the contract through its event, so handlers only ever
// parse the event ID and let the services resolve the row.
type ContractHandler struct {
	log       *logger.Logger
	contracts services.ContractService
	status    services.StatusService
	pdf       services.PdfService
	mail      services.MailService
	variables services.VariableService
}

func NewContractHandler(log *logger.Logger, contracts services.ContractService, status services.StatusService, pdf services.PdfService, mail services.MailService, variables services.VariableService) *ContractHandler {
	return &ContractHandler{
		log:       log.With("handler", "ContractHandler"),
		contracts: contracts,
		status:    status,
		pdf:       pdf,
		mail:      mail,
		variables: variables,
	}
}

func eventIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid event id %q", c.Param("eventID"))
	}
	return id, nil
}

func (h *ContractHandler) GetCurrent(c *gin.Context) {
	eventID, err := eventIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	contract, err := h.contracts.GetCurrent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	if contract == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("no contract for event %s", eventID))
		return
	}
	response.RespondOK(c, gin.H{"contract": contract})
}

type createContractRequest struct {
	TemplateID *uuid.UUID `json:"template_id"`
}

func (h *ContractHandler) Create(c *gin.Context) {
	eventID, err := eventIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	var req createContractRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
			return
		}
	}
	templateID := uuid.Nil
	if req.TemplateID != nil {
		templateID = *req.TemplateID
	}
	contract, err := h.contracts.CreateDraft(c.Request.Context(), eventID, templateID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"contract": contract})
}

func (h *ContractHandler) UpdateContent(c *gin.Context) {
	eventID, err := eventIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	var doc types.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	if doc.Kind != types.DocLegacy && doc.Kind != types.DocPaged {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", fmt.Errorf("unknown document kind %q", doc.Kind))
		return
	}
	contract, err := h.contracts.UpdateContent(c.Request.Context(), eventID, doc)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contract": contract})
}

type switchTemplateRequest struct {
	TemplateID uuid.UUID `json:"template_id" binding:"required"`
}

func (h *ContractHandler) SwitchTemplate(c *gin.Context) {
	eventID, err := eventIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	var req switchTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	contract, err := h.contracts.SwitchTemplate(c.Request.Context(), eventID, req.TemplateID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contract": contract})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ContractHandler) SetStatus(c *gin.Context) {
	eventID, err := eventIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	contract, err := h.status.SetStatus(c.Request.Context(), eventID, types.ContractStatus(req.Status))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contract": contract})
}

type generatePDFRequest struct {
	CSS string `json:"css"`
}

func (h *ContractHandler) GeneratePDF(c *gin.Context) {
	eventID, err := eventIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	var req generatePDFRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
			return
		}
	}
	contract, err := h.pdf.Generate(c.Request.Context(), eventID, req.CSS)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contract": contract})
}

type sendEmailRequest struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	AttachPDF *bool  `json:"attach_pdf"`
}

func (h *ContractHandler) SendEmail(c *gin.Context) {
	eventID, err := eventIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	attach := true
	if req.AttachPDF != nil {
		attach = *req.AttachPDF
	}
	contract, err := h.mail.Send(c.Request.Context(), eventID, services.SendRequest{
		To:        req.To,
		Subject:   req.Subject,
		Message:   req.Message,
		AttachPDF: attach,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contract": contract})
}

func (h *ContractHandler) GetVariables(c *gin.Context) {
	eventID, err := eventIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", err)
		return
	}
	vars, err := h.variables.Resolve(c.Request.Context(), eventID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"variables": vars})
}

func (h *ContractHandler) Delete(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "validation_error", fmt.Errorf("invalid contract id %q", c.Param("id")))
		return
	}
	if err := h.contracts.Delete(c.Request.Context(), contractID); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
