package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/cashflow-backend/infra/cloudrun"
	"github.com/GregMSThompson/cashflow-backend/infra/docker"
	"github.com/GregMSThompson/cashflow-backend/infra/firestore"
	"github.com/GregMSThompson/cashflow-backend/infra/identity"
	"github.com/GregMSThompson/cashflow-backend/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity platform so the api can verify firebase tokens
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// firestore database plus the composite indexes the transaction queries need
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, db, ident, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
