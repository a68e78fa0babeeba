package store

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

type debtStore struct {
	client *firestore.Client
}

func NewDebtStore(client *firestore.Client) *debtStore {
	return &debtStore{client: client}
}

func (s *debtStore) debtCollection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("debts")
}

func (s *debtStore) paymentCollection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("debt_payments")
}

func (s *debtStore) Create(ctx context.Context, uid string, d *models.Debt) error {
	_, err := s.debtCollection(uid).Doc(d.DebtID).Create(ctx, toDebtDoc(d))
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create debt", err)
	}
	return nil
}

func (s *debtStore) Get(ctx context.Context, uid, debtID string) (*models.Debt, error) {
	snap, err := s.debtCollection(uid).Doc(debtID).Get(ctx)
	if err != nil {
		return nil, readError(err, "debt")
	}
	d, err := decodeDebt(snap)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *debtStore) List(ctx context.Context, uid string) ([]models.Debt, error) {
	snaps, err := s.debtCollection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list debts", err)
	}
	debts := make([]models.Debt, 0, len(snaps))
	for _, snap := range snaps {
		d, err := decodeDebt(snap)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, nil
}

// Delete removes the debt together with all of its payments.
func (s *debtStore) Delete(ctx context.Context, uid, debtID string) error {
	log := logger.FromContext(ctx)
	refs, err := s.paymentCollection(uid).Where("debtId", "==", debtID).Documents(ctx).GetAll()
	if err != nil {
		return errs.NewDatabaseError("read", "failed to list debt payments", err)
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs)+1)
	for _, snap := range refs {
		j, err := bw.Delete(snap.Ref)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("delete", "failed to schedule payment delete", err)
		}
		jobs = append(jobs, j)
	}
	j, err := bw.Delete(s.debtCollection(uid).Doc(debtID))
	if err != nil {
		bw.End()
		return errs.NewDatabaseError("delete", "failed to schedule debt delete", err)
	}
	jobs = append(jobs, j)
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			log.Error("failed to delete debt document", "debt_id", debtID, "error", err)
			return errs.NewDatabaseError("delete", "failed to delete debt", err)
		}
	}
	return nil
}

func (s *debtStore) ListPayments(ctx context.Context, uid, debtID string) ([]models.DebtPayment, error) {
	snaps, err := s.paymentCollection(uid).Where("debtId", "==", debtID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list debt payments", err)
	}
	return decodePayments(snaps)
}

// WithLedger loads the debt and its payments inside a Firestore transaction, hands the
// snapshot to fn and persists the book fn returns. A missing debt yields an empty Debts
// slice. Nothing is written when fn returns an error.
func (s *debtStore) WithLedger(ctx context.Context, uid, debtID string, fn func(ledger.Book) (ledger.Book, error)) error {
	debtRef := s.debtCollection(uid).Doc(debtID)
	paymentsQuery := s.paymentCollection(uid).Where("debtId", "==", debtID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var book ledger.Book

		snap, err := tx.Get(debtRef)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return readError(err, "debt")
		default:
			d, err := decodeDebt(snap)
			if err != nil {
				return err
			}
			book.Debts = []models.Debt{d}
		}

		snaps, err := tx.Documents(paymentsQuery).GetAll()
		if err != nil {
			return errs.NewDatabaseError("read", "failed to list debt payments", err)
		}
		if book.Payments, err = decodePayments(snaps); err != nil {
			return err
		}

		next, err := fn(book)
		if err != nil {
			return err
		}
		return s.writeLedger(tx, uid, book, next)
	})
	if err != nil && !isTypedError(err) {
		return errs.NewDatabaseError("update", "failed to update debt ledger", err)
	}
	return err
}

func (s *debtStore) writeLedger(tx *firestore.Transaction, uid string, before, after ledger.Book) error {
	for _, d := range after.Debts {
		if err := tx.Set(s.debtCollection(uid).Doc(d.DebtID), toDebtDoc(&d)); err != nil {
			return err
		}
	}

	kept := make(map[string]bool, len(after.Payments))
	existing := make(map[string]bool, len(before.Payments))
	for _, p := range before.Payments {
		existing[p.PaymentID] = true
	}
	for _, p := range after.Payments {
		kept[p.PaymentID] = true
		if existing[p.PaymentID] {
			continue
		}
		if err := tx.Create(s.paymentCollection(uid).Doc(p.PaymentID), toPaymentDoc(&p)); err != nil {
			return err
		}
	}
	for _, p := range before.Payments {
		if kept[p.PaymentID] {
			continue
		}
		if err := tx.Delete(s.paymentCollection(uid).Doc(p.PaymentID)); err != nil {
			return err
		}
	}
	return nil
}

func decodeDebt(snap *firestore.DocumentSnapshot) (models.Debt, error) {
	var doc debtDoc
	if err := snap.DataTo(&doc); err != nil {
		return models.Debt{}, errs.NewDatabaseError("read", "failed to parse debt data", err)
	}
	d, err := doc.model()
	if err != nil {
		return models.Debt{}, errs.NewDatabaseError("read", "failed to parse debt data", err)
	}
	return d, nil
}

func decodePayments(snaps []*firestore.DocumentSnapshot) ([]models.DebtPayment, error) {
	payments := make([]models.DebtPayment, 0, len(snaps))
	for _, snap := range snaps {
		var doc paymentDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse payment data", err)
		}
		p, err := doc.model()
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse payment data", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func isTypedError(err error) bool {
	var nf *errs.NotFoundError
	var ve *errs.ValidationError
	var de *errs.DatabaseError
	return errors.As(err, &nf) || errors.As(err, &ve) || errors.As(err, &de)
}
