package firestore

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// compositeIndex is an index on a collection group, one field equality-filtered and date ordered.
type compositeIndex struct {
	collection string
	field      string
}

// Transaction listing filters on type or category and orders by date. Both directions are
// needed because the api sorts newest first and the analytics scan oldest first.
var transactionIndexes = []compositeIndex{
	{collection: "transactions", field: "type"},
	{collection: "transactions", field: "category"},
}

func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*firestore.Database, error) {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return nil, err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return nil, err
	}

	if err := createIndexes(ctx, prov, db); err != nil {
		return nil, err
	}

	return db, nil
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Project:    pulumi.String(projectID),
		Name:       pulumi.String("(default)"),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func createIndexes(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	for _, idx := range transactionIndexes {
		for _, order := range []string{"ASCENDING", "DESCENDING"} {
			name := fmt.Sprintf("%s-%s-date-%s", idx.collection, idx.field, order)
			_, err := firestore.NewIndex(ctx, name, &firestore.IndexArgs{
				Project:    pulumi.String(projectID),
				Database:   db.Name,
				Collection: pulumi.String(idx.collection),
				Fields: firestore.IndexFieldArray{
					&firestore.IndexFieldArgs{
						FieldPath: pulumi.String(idx.field),
						Order:     pulumi.String("ASCENDING"),
					},
					&firestore.IndexFieldArgs{
						FieldPath: pulumi.String("date"),
						Order:     pulumi.String(order),
					},
				},
			},
				pulumi.Provider(prov),
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
