package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
)

// InitFirestore connects to the named database. With FIRESTORE_EMULATOR_HOST set the client
// talks to the emulator instead.
func InitFirestore(ctx context.Context, log *slog.Logger, projectID, databaseID string) (*firestore.Client, error) {
	if host := os.Getenv("FIRESTORE_EMULATOR_HOST"); host != "" {
		log.Info("using firestore emulator", "host", host)
	}
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	return firestore.NewClientWithDatabase(ctx, projectID, databaseID)
}
