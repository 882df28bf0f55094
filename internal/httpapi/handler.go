package httpapi

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/recon"
	"payhub-reconciliation/internal/usecase"
)

// Form fields.
const (
	fieldFrom      = "from_date"
	fieldTo        = "to_date"
	fieldService   = "service_name"
	fieldTxnType   = "transaction_type"
	fieldFile      = "file"
	fieldLedger    = "ledger"
	fieldStatement = "statement"
)

// Reconciler is the usecase surface the handler serves.
type Reconciler interface {
	Reconcile(ctx context.Context, req usecase.Request) (*domain.Outcome, error)
	ReconcileVendorLedger(ctx context.Context, req usecase.LedgerRequest) (*domain.Outcome, error)
	Rails() []string
}

// Handler serves the reconciliation API.
type Handler struct {
	svc       Reconciler
	logger    *zap.Logger
	maxUpload int64
}

// NewHandler creates a handler accepting uploads of at most maxUpload bytes.
func NewHandler(svc Reconciler, logger *zap.Logger, maxUpload int64) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}
	return &Handler{svc: svc, logger: logger, maxUpload: maxUpload}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Rails lists the configured rails.
func (h *Handler) Rails(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"rails": h.svc.Rails()})
}

// Reconcile runs a Hub versus vendor reconciliation of an uploaded report.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	if missing := missingFields(r, fieldFrom, fieldTo, fieldService); len(missing) > 0 {
		respondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	service := r.FormValue(fieldService)

	from, ok := formDate(w, r, fieldFrom)
	if !ok {
		return
	}
	to, ok := formDate(w, r, fieldTo)
	if !ok {
		return
	}
	if to.Before(from) {
		respondError(w, http.StatusBadRequest, "to_date is before from_date")
		return
	}

	file, name, ok := formFile(w, r, fieldFile)
	if !ok {
		return
	}
	defer file.Close()

	out, err := h.svc.Reconcile(r.Context(), usecase.Request{
		Rail:            service,
		TransactionType: strings.TrimSpace(r.FormValue(fieldTxnType)),
		From:            from,
		To:              to,
		VendorFile:      domain.Upload{Name: name, Body: file},
	})
	h.respondOutcome(w, service, out, err)
}

// ReconcileVendorLedger reconciles an uploaded vendor ledger against its statement.
func (h *Handler) ReconcileVendorLedger(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	if missing := missingFields(r, fieldService); len(missing) > 0 {
		respondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	service := r.FormValue(fieldService)

	ledger, ledgerName, ok := formFile(w, r, fieldLedger)
	if !ok {
		return
	}
	defer ledger.Close()
	statement, statementName, ok := formFile(w, r, fieldStatement)
	if !ok {
		return
	}
	defer statement.Close()

	out, err := h.svc.ReconcileVendorLedger(r.Context(), usecase.LedgerRequest{
		Rail:      service,
		Ledger:    domain.Upload{Name: ledgerName, Body: ledger},
		Statement: domain.Upload{Name: statementName, Body: statement},
	})
	h.respondOutcome(w, service, out, err)
}

func (h *Handler) respondOutcome(w http.ResponseWriter, service string, out *domain.Outcome, err error) {
	if err != nil {
		h.logger.Error("reconciliation failed", zap.String("service_name", service), zap.Error(err))
		respondFailure(w, service)
		return
	}
	switch out.Kind {
	case domain.OutcomeResult:
		respondJSON(w, http.StatusOK, Envelope{IsSuccess: true, Data: out.Result, Message: MsgProcessed, ServiceName: service})
	case domain.OutcomeLedger:
		respondJSON(w, http.StatusOK, Envelope{IsSuccess: true, Data: out.Ledger, Message: MsgProcessed, ServiceName: service})
	default:
		h.logger.Info("reconciliation answered with a message",
			zap.String("service_name", service),
			zap.String("kind", string(out.Kind)),
			zap.String("message", out.Message))
		respondMessage(w, service, out.Message)
	}
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return false
	}
	return true
}

func missingFields(r *http.Request, fields ...string) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(r.FormValue(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

func formDate(w http.ResponseWriter, r *http.Request, field string) (time.Time, bool) {
	raw := r.FormValue(field)
	d := recon.ParseDate(raw, []string{"2006-01-02"}, false)
	if d == nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %q", field, raw))
		return time.Time{}, false
	}
	return *d, true
}

func formFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil || header.Filename == "" {
		if file != nil {
			file.Close()
		}
		if field == fieldFile {
			respondError(w, http.StatusBadRequest, "No file uploaded")
		} else {
			respondError(w, http.StatusBadRequest, "No "+field+" file uploaded")
		}
		return nil, "", false
	}
	return file, header.Filename, true
}
