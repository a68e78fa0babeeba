package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

const maxImportBatch = 500

type transactionTSStore interface {
	Create(ctx context.Context, uid string, tx *models.Transaction) error
	CreateBatch(ctx context.Context, uid string, txs []models.Transaction) error
	Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
	Update(ctx context.Context, uid string, tx *models.Transaction) error
	Delete(ctx context.Context, uid, transactionID string) error
	List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error)
}

type transactionService struct {
	txs      transactionTSStore
	clockNow func() time.Time
	newID    func() string
}

func NewTransactionService(txs transactionTSStore) *transactionService {
	return &transactionService{
		txs:      txs,
		clockNow: time.Now,
		newID:    uuid.NewString,
	}
}

func (s *transactionService) Create(ctx context.Context, uid string, req dto.TransactionRequest) (*models.Transaction, error) {
	if err := validateTransaction(req); err != nil {
		return nil, err
	}

	now := s.clockNow()
	tx := &models.Transaction{
		TransactionID: s.newID(),
		Type:          models.TransactionType(req.Type),
		Category:      req.Category,
		Date:          req.Date,
		Description:   strings.TrimSpace(req.Description),
		Value:         req.Value,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.txs.Create(ctx, uid, tx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transaction created", "transaction_id", tx.TransactionID, "type", tx.Type, "category", tx.Category)
	return tx, nil
}

// Import validates every entry before writing any of them.
func (s *transactionService) Import(ctx context.Context, uid string, reqs []dto.TransactionRequest) ([]models.Transaction, error) {
	if len(reqs) == 0 {
		return nil, errs.NewValidationError("at least one transaction is required")
	}
	if len(reqs) > maxImportBatch {
		return nil, errs.NewValidationError("too many transactions in one import")
	}

	now := s.clockNow()
	txs := make([]models.Transaction, 0, len(reqs))
	for i, req := range reqs {
		if err := validateTransaction(req); err != nil {
			return nil, errs.NewValidationError(fmt.Sprintf("transaction %d: %s", i, err.Error()))
		}
		txs = append(txs, models.Transaction{
			TransactionID: s.newID(),
			Type:          models.TransactionType(req.Type),
			Category:      req.Category,
			Date:          req.Date,
			Description:   strings.TrimSpace(req.Description),
			Value:         req.Value,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if err := s.txs.CreateBatch(ctx, uid, txs); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transactions imported", "count", len(txs))
	return txs, nil
}

func (s *transactionService) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	return s.txs.Get(ctx, uid, transactionID)
}

// Update replaces the editable fields; the id and creation time are kept.
func (s *transactionService) Update(ctx context.Context, uid, transactionID string, req dto.TransactionRequest) (*models.Transaction, error) {
	if err := validateTransaction(req); err != nil {
		return nil, err
	}

	tx, err := s.txs.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}
	tx.Type = models.TransactionType(req.Type)
	tx.Category = req.Category
	tx.Date = req.Date
	tx.Description = strings.TrimSpace(req.Description)
	tx.Value = req.Value
	tx.UpdatedAt = s.clockNow()

	if err := s.txs.Update(ctx, uid, tx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transaction updated", "transaction_id", transactionID)
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, uid, transactionID string) error {
	if _, err := s.txs.Get(ctx, uid, transactionID); err != nil {
		return err
	}
	if err := s.txs.Delete(ctx, uid, transactionID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("transaction deleted", "transaction_id", transactionID)
	return nil
}

func (s *transactionService) List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error) {
	if q.Type != nil && !models.TransactionType(*q.Type).Valid() {
		return nil, errs.NewValidationError("type must be income or expense")
	}
	if q.DateFrom != nil {
		if err := validateDate("from", *q.DateFrom); err != nil {
			return nil, err
		}
	}
	if q.DateTo != nil {
		if err := validateDate("to", *q.DateTo); err != nil {
			return nil, err
		}
	}
	if q.Limit < 0 {
		return nil, errs.NewValidationError("limit must not be negative")
	}

	txs, err := s.txs.List(ctx, uid, q)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

func validateTransaction(req dto.TransactionRequest) error {
	t := models.TransactionType(req.Type)
	if !t.Valid() {
		return errs.NewValidationError("type must be income or expense")
	}
	if !models.ValidCategory(t, req.Category) {
		return errs.NewValidationError("category " + req.Category + " is not valid for " + req.Type)
	}
	if err := validateText("description", req.Description, maxDescriptionLength); err != nil {
		return err
	}
	if err := validatePositive("value", req.Value); err != nil {
		return err
	}
	return validateDate("date", req.Date)
}
