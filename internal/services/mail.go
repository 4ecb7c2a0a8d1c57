package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/platform/apierr"
	"github.com/eventdesk/eventdesk-backend/internal/platform/ctxutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/gcp"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/platform/sendgrid"
	"github.com/eventdesk/eventdesk-backend/internal/repos"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

type SendRequest struct {
	To        string
	Subject   string
	Message   string
	AttachPDF bool
}

// MailService dispatches the contract to the client: message wrapped in
// the mail layout plus the sender's signature, optionally with the
// generated artifact attached. Status advances to sent only after the
// delivery service confirms; a failed send leaves the contract exactly
// as it was.
type MailService interface {
	Send(ctx context.Context, eventID uuid.UUID, req SendRequest) (*types.Contract, error)
}

type mailService struct {
	log          *logger.Logger
	contracts    ContractService
	status       StatusService
	employeeRepo repos.EmployeeRepo
	bucket       gcp.BucketService
	mailClient   sendgrid.Client
	httpClient   *http.Client
}

func NewMailService(log *logger.Logger, contracts ContractService, status StatusService, employeeRepo repos.EmployeeRepo, bucket gcp.BucketService, mailClient sendgrid.Client) MailService {
	return &mailService{
		log:          log.With("service", "MailService"),
		contracts:    contracts,
		status:       status,
		employeeRepo: employeeRepo,
		bucket:       bucket,
		mailClient:   mailClient,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (ms *mailService) Send(ctx context.Context, eventID uuid.UUID, req SendRequest) (*types.Contract, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.PermissionDenied(fmt.Errorf("no actor on request"))
	}

	contract, err := ms.contracts.GetCurrent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, apierr.NotFound(fmt.Errorf("no contract exists for event %s", eventID))
	}

	to := strings.TrimSpace(req.To)
	if to == "" {
		to = strings.TrimSpace(contract.Recipient)
	}
	if to == "" {
		return nil, apierr.Validation(fmt.Errorf("contract %s has no recipient address", contract.ID))
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, apierr.Validation(fmt.Errorf("subject required"))
	}

	sender, signature := ms.resolveSignature(ctx, rd)
	htmlBody := buildEmailHTML(req.Message, signature)

	var attachments []sendgrid.Attachment
	if req.AttachPDF {
		att, attErr := ms.fetchArtifact(ctx, contract)
		if attErr != nil {
			return nil, attErr
		}
		attachments = append(attachments, *att)
	}

	mail := sendgrid.SendEmailRequest{
		To:          []sendgrid.EmailAddress{{Email: to}},
		Subject:     req.Subject,
		HTML:        htmlBody,
		Attachments: attachments,
	}
	if sender != nil {
		mail.From = sendgrid.EmailAddress{Email: sender.Email, Name: sender.FullName()}
		if sender.FromAccountID != "" {
			mail.Headers = map[string]string{"X-From-Account": sender.FromAccountID}
		}
	}

	result, err := ms.mailClient.Send(ctx, mail)
	if err != nil {
		ms.log.Warn("Contract mail delivery failed", "contract_id", contract.ID, "error", err)
		return nil, apierr.Upstream(fmt.Errorf("send contract %s: %w", contract.ID, err))
	}

	ms.log.Info("Contract mail delivered",
		"contract_id", contract.ID,
		"recipient", to,
		"message_id", result.MessageID,
		"attached_pdf", req.AttachPDF,
	)

	return ms.status.SetStatus(ctx, eventID, types.ContractStatusSent)
}

// resolveSignature walks the fallback chain: stored signature record,
// then one derived from the employee profile, then a minimal sign-off.
func (ms *mailService) resolveSignature(ctx context.Context, rd *ctxutil.RequestData) (*types.Employee, string) {
	dbc := dbctx.Context{Ctx: ctx}

	var sender *types.Employee
	if rd.ActorID != uuid.Nil {
		emp, err := ms.employeeRepo.GetByID(dbc, rd.ActorID)
		if err != nil {
			ms.log.Warn("Sender profile fetch failed, falling back", "actor_id", rd.ActorID, "error", err)
		} else {
			sender = emp
		}
	}

	if sender != nil {
		sig, err := ms.employeeRepo.GetSignatureByEmployeeID(dbc, sender.ID)
		if err != nil {
			ms.log.Warn("Signature fetch failed, deriving from profile", "employee_id", sender.ID, "error", err)
		} else if sig != nil && strings.TrimSpace(sig.HTML) != "" {
			return sender, sig.HTML
		}
		return sender, signatureFromProfile(sender)
	}
	return nil, "<p>Pozdrawiam</p>"
}

func signatureFromProfile(emp *types.Employee) string {
	var sb strings.Builder
	sb.WriteString("<p>Pozdrawiam,<br>")
	sb.WriteString(emp.FullName())
	if emp.Title != "" {
		sb.WriteString("<br>" + emp.Title)
	}
	if emp.Phone != "" {
		sb.WriteString("<br>tel. " + emp.Phone)
	}
	if emp.Email != "" {
		sb.WriteString("<br>" + emp.Email)
	}
	sb.WriteString("</p>")
	return sb.String()
}

func buildEmailHTML(message, signature string) string {
	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; font-size: 14px; color: #222;">`)
	sb.WriteString("<div>")
	sb.WriteString(strings.ReplaceAll(message, "\n", "<br>"))
	sb.WriteString("</div>")
	sb.WriteString(`<div style="margin-top: 24px;">`)
	sb.WriteString(signature)
	sb.WriteString("</div></div>")
	return sb.String()
}

// fetchArtifact pulls the generated PDF through a time-limited signed
// URL, the same door the storage service exposes to every other
// consumer.
func (ms *mailService) fetchArtifact(ctx context.Context, contract *types.Contract) (*sendgrid.Attachment, error) {
	if contract.GeneratedPDFPath == nil || strings.TrimSpace(*contract.GeneratedPDFPath) == "" {
		return nil, apierr.Validation(fmt.Errorf("contract %s has no generated artifact to attach", contract.ID))
	}
	key := *contract.GeneratedPDFPath

	url, err := ms.bucket.SignedURL(key, time.Hour)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("sign artifact url: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierr.Upstream(err)
	}
	resp, err := ms.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("fetch artifact: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierr.Upstream(fmt.Errorf("fetch artifact: http %d", resp.StatusCode))
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("read artifact: %w", err))
	}

	filename := path.Base(key)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}
	return &sendgrid.Attachment{
		Filename: filename,
		MIMEType: "application/pdf",
		Content:  raw,
	}, nil
}
