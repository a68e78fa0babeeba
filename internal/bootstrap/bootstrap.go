package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/cashflow-backend/internal/config"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Firestore, err = InitFirestore(applicationCtx, bs.Log, cfg.ProjectID, cfg.FirestoreDatabase)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

// Close releases the Firestore connection. Safe to call on a partially initialised Bootstrap.
func (bs *Bootstrap) Close() {
	if bs.Firestore == nil {
		return
	}
	if err := bs.Firestore.Close(); err != nil {
		bs.Log.Warn("closing firestore client", "error", err)
	}
}
