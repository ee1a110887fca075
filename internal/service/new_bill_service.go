package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/billed-app/billed-server/internal/domain/entity"
	"github.com/billed-app/billed-server/internal/domain/workflow"
	"github.com/billed-app/billed-server/internal/storage"
	"github.com/billed-app/billed-server/pkg/utils"
	"go.uber.org/zap"
)

// BillWriter is the create half of the document store contract.
type BillWriter interface {
	Create(ctx context.Context, bill *entity.Bill) error
}

// UnsupportedFormatError is returned when a selected file's extension is
// not an accepted receipt format. Its message is shown to the user as-is.
type UnsupportedFormatError struct {
	FileName string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("Format non supporté: %s. seul les formats jpeg, jpg et png sont supportés.", e.FileName)
}

// defaultPct is applied when the form's pct field is empty or unparsable.
const defaultPct = 20

// NewBillService creates upload sessions for new-bill submissions.
type NewBillService struct {
	bills    BillWriter
	receipts storage.ReceiptStorage
	machines *workflow.Builder
	logger   *zap.Logger
}

// NewNewBillService creates a new-bill service over the given store halves.
func NewNewBillService(bills BillWriter, receipts storage.ReceiptStorage, logger *zap.Logger) *NewBillService {
	b := workflow.NewBuilder()
	b.Permit(workflow.StateIdle, workflow.TriggerSelectFile, workflow.StateUploading)
	b.Permit(workflow.StateIdle, workflow.TriggerRejectFile, workflow.StateRejected)
	b.Permit(workflow.StateIdle, workflow.TriggerSubmit, workflow.StateSubmitting)
	b.Permit(workflow.StateRejected, workflow.TriggerSelectFile, workflow.StateUploading)
	b.Permit(workflow.StateRejected, workflow.TriggerRejectFile, workflow.StateRejected)
	b.Permit(workflow.StateRejected, workflow.TriggerSubmit, workflow.StateSubmitting)
	b.Permit(workflow.StateUploading, workflow.TriggerSelectFile, workflow.StateUploading)
	b.Permit(workflow.StateUploading, workflow.TriggerRejectFile, workflow.StateRejected)
	b.Permit(workflow.StateUploading, workflow.TriggerUploadResolved, workflow.StateUploadComplete)
	b.Permit(workflow.StateUploading, workflow.TriggerSubmit, workflow.StateSubmitting)
	b.Permit(workflow.StateUploadComplete, workflow.TriggerSelectFile, workflow.StateUploading)
	b.Permit(workflow.StateUploadComplete, workflow.TriggerRejectFile, workflow.StateRejected)
	b.Permit(workflow.StateUploadComplete, workflow.TriggerSubmit, workflow.StateSubmitting)
	b.Permit(workflow.StateSubmitting, workflow.TriggerSubmit, workflow.StateSubmitting)
	b.Permit(workflow.StateSubmitting, workflow.TriggerCreated, workflow.StateSubmitted)

	return &NewBillService{
		bills:    bills,
		receipts: receipts,
		machines: b,
		logger:   logger,
	}
}

// NewSession starts a fresh upload session for one submission interaction.
// Sessions are never reused across submissions.
func (s *NewBillService) NewSession(identity Identity) *UploadSession {
	return &UploadSession{
		svc:      s,
		identity: identity,
		machine:  s.machines.Build(workflow.StateIdle),
	}
}

// UploadSession tracks one file-selection-to-submit interaction: the chosen
// file, the resolved receipt fields once the upload completes, and the
// lifecycle state machine. Safe for the interleaving of upload resolution
// and submission.
type UploadSession struct {
	svc      *NewBillService
	identity Identity

	mu         sync.Mutex
	machine    *workflow.Machine
	generation int
	fileURL    string
	fileName   string
	uploadErr  error
	uploadDone chan struct{}
}

// State returns the session's current lifecycle state.
func (u *UploadSession) State() workflow.State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.machine.State()
}

// FileURL returns the receipt download URL, empty until the upload resolves.
func (u *UploadSession) FileURL() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.fileURL
}

// FileName returns the receipt file name, empty until the upload resolves.
func (u *UploadSession) FileName() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.fileName
}

// SelectFile validates the chosen file and, when accepted, starts an
// asynchronous upload scoped to the current user's email and the file's
// name. A rejected file clears any pending reference and returns an
// UnsupportedFormatError carrying the exact user-facing message; no upload
// is initiated.
func (u *UploadSession) SelectFile(ctx context.Context, fileName string, content []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !utils.IsAcceptedReceiptFile(fileName) {
		if err := u.machine.Fire(workflow.TriggerRejectFile); err != nil {
			return err
		}
		u.fileURL = ""
		u.fileName = ""
		u.uploadDone = nil
		u.generation++
		u.svc.logger.Info("Receipt file rejected",
			zap.String("file_name", fileName))
		return &UnsupportedFormatError{FileName: filepath.Base(fileName)}
	}

	if err := u.machine.Fire(workflow.TriggerSelectFile); err != nil {
		return err
	}

	email := u.identity.CurrentUserEmail(ctx)
	name := filepath.Base(fileName)

	// Re-selecting invalidates any upload still in flight.
	u.generation++
	gen := u.generation
	u.fileURL = ""
	u.fileName = ""
	u.uploadErr = nil
	done := make(chan struct{})
	u.uploadDone = done

	go func() {
		defer close(done)
		url, err := u.svc.receipts.Put(ctx, storage.ReceiptPath(email, name), content)
		u.resolveUpload(gen, name, url, err)
	}()

	return nil
}

// resolveUpload records the upload outcome, unless the session has moved on
// (stale generation, or already submitting) — then it is a no-op.
func (u *UploadSession) resolveUpload(gen int, name, url string, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if gen != u.generation {
		return
	}
	if err != nil {
		u.uploadErr = fmt.Errorf("upload receipt: %w", err)
		u.svc.logger.Error("Receipt upload failed",
			zap.String("file_name", name),
			zap.Error(err))
		return
	}
	if !u.machine.CanFire(workflow.TriggerUploadResolved) {
		// Submitted before the upload resolved; the session is detached.
		return
	}
	if fireErr := u.machine.Fire(workflow.TriggerUploadResolved); fireErr != nil {
		return
	}
	u.fileURL = url
	u.fileName = name
	u.svc.logger.Debug("Receipt upload resolved",
		zap.String("file_name", name),
		zap.String("file_url", url))
}

// AwaitUpload blocks until the in-flight upload resolves (or ctx ends) and
// reports its outcome. Without a pending upload it returns immediately.
func (u *UploadSession) AwaitUpload(ctx context.Context) error {
	u.mu.Lock()
	done := u.uploadDone
	u.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploadErr
}

// SubmitFields carries the raw form values of a new bill.
type SubmitFields struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	VAT        string
	Pct        string
	Commentary string
}

// Submit assembles the bill from the form fields and the session's receipt
// fields and creates it in the store. Submission before the upload resolves
// is allowed and produces a bill with empty receipt fields. Submit returns
// only after the store acknowledges the create, so callers can navigate
// away without racing it.
func (u *UploadSession) Submit(ctx context.Context, fields SubmitFields) (*entity.Bill, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.machine.Fire(workflow.TriggerSubmit); err != nil {
		return nil, err
	}

	amount, err := strconv.ParseInt(fields.Amount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", fields.Amount, err)
	}

	pct, err := strconv.Atoi(fields.Pct)
	if err != nil || pct == 0 {
		pct = defaultPct
	}

	// VAT is optional; an absent or unparsable value stores as zero.
	vat, err := strconv.ParseFloat(fields.VAT, 64)
	if err != nil {
		vat = 0
	}

	bill := &entity.Bill{
		Email:      u.identity.CurrentUserEmail(ctx),
		Type:       fields.Type,
		Name:       utils.SanitizeString(fields.Name),
		Amount:     amount,
		Date:       fields.Date,
		VAT:        vat,
		Pct:        pct,
		Commentary: utils.SanitizeString(fields.Commentary),
		FileURL:    u.fileURL,
		FileName:   u.fileName,
		Status:     entity.StatusPending,
	}

	if err := u.svc.bills.Create(ctx, bill); err != nil {
		u.svc.logger.Error("Failed to create bill", zap.Error(err))
		return nil, fmt.Errorf("create bill: %w", err)
	}

	if err := u.machine.Fire(workflow.TriggerCreated); err != nil {
		return nil, err
	}

	u.svc.logger.Info("Bill submitted",
		zap.String("bill_id", bill.ID),
		zap.String("email", bill.Email),
		zap.Int64("amount", bill.Amount))

	return bill, nil
}
