package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/platform/sendgrid"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

type fakeMailClient struct {
	err   error
	calls int
	last  sendgrid.SendEmailRequest
}

func (f *fakeMailClient) Send(ctx context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &sendgrid.SendEmailResult{StatusCode: 202, MessageID: "msg-1"}, nil
}

type fakeStatusService struct {
	err    error
	calls  int
	status types.ContractStatus
}

func (f *fakeStatusService) SetStatus(ctx context.Context, eventID uuid.UUID, newStatus types.ContractStatus) (*types.Contract, error) {
	f.calls++
	f.status = newStatus
	if f.err != nil {
		return nil, f.err
	}
	now := time.Now()
	return &types.Contract{ID: uuid.New(), EventID: eventID, Status: newStatus, SentAt: &now}, nil
}

type fakeBucket struct {
	url string
	err error
}

func (f *fakeBucket) SignedURL(key string, ttl time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeBucket) DownloadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBucket) ReadAll(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func newTestMailService(t *testing.T, contracts *fakeContractService, status *fakeStatusService, employees *fakeEmployeeRepo, bucket *fakeBucket, mail *fakeMailClient) MailService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewMailService(log, contracts, status, employees, bucket, mail)
}

func sentContract() *types.Contract {
	return &types.Contract{
		ID:        uuid.New(),
		EventID:   uuid.New(),
		Status:    types.ContractStatusDraft,
		Recipient: "klient@example.com",
	}
}

func TestSendAdvancesStatusOnDelivery(t *testing.T) {
	contract := sentContract()
	status := &fakeStatusService{}
	mail := &fakeMailClient{}
	ms := newTestMailService(t, &fakeContractService{current: contract}, status, &fakeEmployeeRepo{}, &fakeBucket{}, mail)

	got, err := ms.Send(actorContext(), contract.EventID, SendRequest{Subject: "Umowa", Message: "W załączeniu umowa."})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if mail.calls != 1 {
		t.Fatalf("mail calls: want=1 got=%d", mail.calls)
	}
	if status.calls != 1 || status.status != types.ContractStatusSent {
		t.Fatalf("status transition: calls=%d status=%s", status.calls, status.status)
	}
	if got.Status != types.ContractStatusSent {
		t.Fatalf("returned contract status: %s", got.Status)
	}
	if mail.last.To[0].Email != "klient@example.com" {
		t.Fatalf("recipient fell back wrong: %s", mail.last.To[0].Email)
	}
}

func TestSendFailureLeavesStatusUntouched(t *testing.T) {
	contract := sentContract()
	status := &fakeStatusService{}
	mail := &fakeMailClient{err: errors.New("delivery rejected")}
	ms := newTestMailService(t, &fakeContractService{current: contract}, status, &fakeEmployeeRepo{}, &fakeBucket{}, mail)

	_, err := ms.Send(actorContext(), contract.EventID, SendRequest{Subject: "Umowa", Message: "m"})
	if err == nil {
		t.Fatalf("Send: expected error on delivery failure")
	}
	if status.calls != 0 {
		t.Fatalf("status advanced despite delivery failure")
	}
}

func TestSendRequiresRecipient(t *testing.T) {
	contract := sentContract()
	contract.Recipient = ""
	ms := newTestMailService(t, &fakeContractService{current: contract}, &fakeStatusService{}, &fakeEmployeeRepo{}, &fakeBucket{}, &fakeMailClient{})

	_, err := ms.Send(actorContext(), contract.EventID, SendRequest{Subject: "Umowa", Message: "m"})
	if err == nil {
		t.Fatalf("Send: expected validation error without recipient")
	}
}

func TestSendWithoutContractNotFound(t *testing.T) {
	ms := newTestMailService(t, &fakeContractService{}, &fakeStatusService{}, &fakeEmployeeRepo{}, &fakeBucket{}, &fakeMailClient{})

	_, err := ms.Send(actorContext(), uuid.New(), SendRequest{Subject: "Umowa", Message: "m"})
	if err == nil {
		t.Fatalf("Send: expected not-found error without a contract")
	}
}

func TestSendAttachRequiresGeneratedArtifact(t *testing.T) {
	contract := sentContract()
	mail := &fakeMailClient{}
	ms := newTestMailService(t, &fakeContractService{current: contract}, &fakeStatusService{}, &fakeEmployeeRepo{}, &fakeBucket{}, mail)

	_, err := ms.Send(actorContext(), contract.EventID, SendRequest{Subject: "Umowa", Message: "m", AttachPDF: true})
	if err == nil {
		t.Fatalf("Send: expected validation error without generated artifact")
	}
	if mail.calls != 0 {
		t.Fatalf("mail sent despite missing artifact")
	}
}

func TestSendAttachFetchesThroughSignedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	contract := sentContract()
	generated := "contracts/umowa.pdf"
	contract.GeneratedPDFPath = &generated

	mail := &fakeMailClient{}
	ms := newTestMailService(t, &fakeContractService{current: contract}, &fakeStatusService{}, &fakeEmployeeRepo{}, &fakeBucket{url: srv.URL}, mail)

	_, err := ms.Send(actorContext(), contract.EventID, SendRequest{Subject: "Umowa", Message: "m", AttachPDF: true})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(mail.last.Attachments) != 1 {
		t.Fatalf("attachments: want=1 got=%d", len(mail.last.Attachments))
	}
	att := mail.last.Attachments[0]
	if att.Filename != "umowa.pdf" || att.MIMEType != "application/pdf" {
		t.Fatalf("attachment meta: filename=%q mime=%q", att.Filename, att.MIMEType)
	}
	if string(att.Content) != "%PDF-1.7 fake" {
		t.Fatalf("attachment content: %q", att.Content)
	}
}

func TestSendSignatureFallbackChain(t *testing.T) {
	contract := sentContract()
	employee := &types.Employee{ID: uuid.New(), FirstName: "Anna", LastName: "Nowak", Title: "Koordynator", Email: "anna@example.com"}
	mail := &fakeMailClient{}

	// Explicit signature record wins.
	sig := &types.EmailSignature{EmployeeID: employee.ID, HTML: "<p>-- Anna z EventDesk</p>"}
	ms := newTestMailService(t, &fakeContractService{current: contract}, &fakeStatusService{}, &fakeEmployeeRepo{employee: employee, signature: sig}, &fakeBucket{}, mail)
	if _, err := ms.Send(actorContext(), contract.EventID, SendRequest{Subject: "U", Message: "m"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(mail.last.HTML, "Anna z EventDesk") {
		t.Fatalf("explicit signature not used: %q", mail.last.HTML)
	}

	// No record: derive from the profile.
	ms = newTestMailService(t, &fakeContractService{current: contract}, &fakeStatusService{}, &fakeEmployeeRepo{employee: employee}, &fakeBucket{}, mail)
	if _, err := ms.Send(actorContext(), contract.EventID, SendRequest{Subject: "U", Message: "m"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(mail.last.HTML, "Anna Nowak") || !strings.Contains(mail.last.HTML, "Koordynator") {
		t.Fatalf("profile signature not derived: %q", mail.last.HTML)
	}

	// No profile either: minimal fallback.
	ms = newTestMailService(t, &fakeContractService{current: contract}, &fakeStatusService{}, &fakeEmployeeRepo{}, &fakeBucket{}, mail)
	if _, err := ms.Send(actorContext(), contract.EventID, SendRequest{Subject: "U", Message: "m"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(mail.last.HTML, "Pozdrawiam") {
		t.Fatalf("minimal fallback signature missing: %q", mail.last.HTML)
	}
}
