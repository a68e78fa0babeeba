package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

type goalStore struct {
	client *firestore.Client
}

func NewGoalStore(client *firestore.Client) *goalStore {
	return &goalStore{client: client}
}

func (s *goalStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("goals")
}

func (s *goalStore) Create(ctx context.Context, uid string, g *models.InvestmentGoal) error {
	_, err := s.collection(uid).Doc(g.GoalID).Create(ctx, toGoalDoc(g))
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create goal", err)
	}
	return nil
}

func (s *goalStore) Get(ctx context.Context, uid, goalID string) (*models.InvestmentGoal, error) {
	snap, err := s.collection(uid).Doc(goalID).Get(ctx)
	if err != nil {
		return nil, readError(err, "goal")
	}
	g, err := decodeGoal(snap)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *goalStore) List(ctx context.Context, uid string) ([]models.InvestmentGoal, error) {
	snaps, err := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list goals", err)
	}
	goals := make([]models.InvestmentGoal, 0, len(snaps))
	for _, snap := range snaps {
		g, err := decodeGoal(snap)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (s *goalStore) Delete(ctx context.Context, uid, goalID string) error {
	_, err := s.collection(uid).Doc(goalID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete goal", err)
	}
	return nil
}

// Mutate applies fn to the stored goal in a transaction so concurrent contributions are not lost.
// fn owns every field it changes, UpdatedAt included.
func (s *goalStore) Mutate(ctx context.Context, uid, goalID string, fn func(*models.InvestmentGoal) error) (*models.InvestmentGoal, error) {
	ref := s.collection(uid).Doc(goalID)
	var out models.InvestmentGoal

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return readError(err, "goal")
		}
		g, err := decodeGoal(snap)
		if err != nil {
			return err
		}
		if err := fn(&g); err != nil {
			return err
		}
		out = g
		return tx.Set(ref, toGoalDoc(&g))
	})
	if err != nil {
		if isTypedError(err) {
			return nil, err
		}
		return nil, errs.NewDatabaseError("update", "failed to update goal", err)
	}
	return &out, nil
}

func decodeGoal(snap *firestore.DocumentSnapshot) (models.InvestmentGoal, error) {
	var doc goalDoc
	if err := snap.DataTo(&doc); err != nil {
		return models.InvestmentGoal{}, errs.NewDatabaseError("read", "failed to parse goal data", err)
	}
	g, err := doc.model()
	if err != nil {
		return models.InvestmentGoal{}, errs.NewDatabaseError("read", "failed to parse goal data", err)
	}
	return g, nil
}
