package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) txCollection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *transactionStore) Create(ctx context.Context, uid string, tx *models.Transaction) error {
	_, err := s.txCollection(uid).Doc(tx.TransactionID).Create(ctx, toTransactionDoc(tx))
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

// CreateBatch writes many transactions at once; existing ids are overwritten.
func (s *transactionStore) CreateBatch(ctx context.Context, uid string, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(txs))
	for _, t := range txs {
		doc := s.txCollection(uid).Doc(t.TransactionID)
		job, err := bw.Set(doc, toTransactionDoc(&t))
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("create", "failed to schedule transaction write", err)
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("create", "failed to write transaction", err)
		}
	}

	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	snap, err := s.txCollection(uid).Doc(transactionID).Get(ctx)
	if err != nil {
		return nil, readError(err, "transaction")
	}
	var doc transactionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	tx, err := doc.model()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return &tx, nil
}

func (s *transactionStore) Update(ctx context.Context, uid string, tx *models.Transaction) error {
	_, err := s.txCollection(uid).Doc(tx.TransactionID).Set(ctx, toTransactionDoc(tx))
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	return nil
}

func (s *transactionStore) Delete(ctx context.Context, uid, transactionID string) error {
	_, err := s.txCollection(uid).Doc(transactionID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}

// List runs q against the user's transactions ordered by date. Equality filters combined
// with the date range rely on the composite indexes declared in infra/firestore.
func (s *transactionStore) List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error) {
	query := s.txCollection(uid).Query
	if q.Type != nil {
		query = query.Where("type", "==", *q.Type)
	}
	if q.Category != nil {
		query = query.Where("category", "==", *q.Category)
	}
	if q.DateFrom != nil {
		query = query.Where("date", ">=", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("date", "<=", *q.DateTo)
	}
	dir := firestore.Asc
	if q.Desc {
		dir = firestore.Desc
	}
	query = query.OrderBy("date", dir)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []models.Transaction
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list transactions", err)
		}
		var doc transactionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		tx, err := doc.model()
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		out = append(out, tx)
	}
	return out, nil
}
