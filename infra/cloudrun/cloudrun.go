package cloudrun

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/cashflow-backend/infra/common"
)

const apiPort = 8080

// Roles granted to the api's service account.
var apiRoles = map[string]string{
	"firestoreAccess": "roles/datastore.user",
	"logWriter":       "roles/logging.logWriter",
}

// serviceConfig is the stack configuration of the api service. Scaling and sizing come from
// the cloudrun namespace, app settings from cashflow.
type serviceConfig struct {
	ProjectID       string
	Region          string
	MinScale        int
	MaxScale        int
	CPU             string
	Memory          string
	Concurrency     int
	TimeoutSeconds  int
	LogLevel        string
	DefaultCurrency string
}

func loadServiceConfig(ctx *pulumi.Context) serviceConfig {
	gcpCfg := config.New(ctx, "gcp")
	runCfg := config.New(ctx, "cloudrun")
	appCfg := config.New(ctx, "cashflow")

	return serviceConfig{
		ProjectID:       gcpCfg.Require("project"),
		Region:          gcpCfg.Require("region"),
		MinScale:        runCfg.GetInt("minScale"),
		MaxScale:        cmp.Or(runCfg.GetInt("maxScale"), 2),
		CPU:             cmp.Or(runCfg.Get("cpu"), "1"),
		Memory:          cmp.Or(runCfg.Get("memory"), "512Mi"),
		Concurrency:     cmp.Or(runCfg.GetInt("concurrency"), 80),
		TimeoutSeconds:  cmp.Or(runCfg.GetInt("timeout"), 60),
		LogLevel:        cmp.Or(runCfg.Get("logLevel"), "info"),
		DefaultCurrency: cmp.Or(appCfg.Get("defaultCurrency"), "USD"),
	}
}

func (c serviceConfig) validate() error {
	switch {
	case c.MinScale < 0:
		return fmt.Errorf("cloudrun:minScale must not be negative, got %d", c.MinScale)
	case c.MaxScale < c.MinScale:
		return fmt.Errorf("cloudrun:maxScale %d is below minScale %d", c.MaxScale, c.MinScale)
	case c.Concurrency < 1:
		return fmt.Errorf("cloudrun:concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}

func (c serviceConfig) imageName(tag string) string {
	return fmt.Sprintf("%s-docker.pkg.dev/%s/api/cashflow-api:%s", c.Region, c.ProjectID, tag)
}

func (c serviceConfig) annotations() map[string]string {
	return map[string]string{
		"autoscaling.knative.dev/minScale":         strconv.Itoa(c.MinScale),
		"autoscaling.knative.dev/maxScale":         strconv.Itoa(c.MaxScale),
		"run.googleapis.com/cpu":                   c.CPU,
		"run.googleapis.com/memory":                c.Memory,
		"run.googleapis.com/cpu-throttling":        "true",
		"run.googleapis.com/container-concurrency": strconv.Itoa(c.Concurrency),
	}
}

// env is the container environment read by config.New in the api. PORT is left to Cloud Run.
func (c serviceConfig) env() map[string]string {
	return map[string]string{
		"PROJECTID":       c.ProjectID,
		"REGION":          c.Region,
		"LOGLEVEL":        c.LogLevel,
		"DEFAULTCURRENCY": c.DefaultCurrency,
	}
}

// SetupCloudRun deploys the api image as a public Cloud Run service reading from db.
// Requests are authenticated by the api itself against Firebase.
func SetupCloudRun(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database, deps ...pulumi.Resource) (*serviceaccount.Account, error) {
	cfg := loadServiceConfig(ctx)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	img, err := buildImage(ctx, cfg, deps...)
	if err != nil {
		return nil, err
	}

	api, err := projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	sa, err := apiServiceAccount(ctx, cfg, prov)
	if err != nil {
		return nil, err
	}

	svc, err := deployService(ctx, cfg, img, sa, db, prov, api, db)
	if err != nil {
		return nil, err
	}

	_, err = cloudrun.NewIamMember(ctx, "publicInvoker", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(cfg.Region),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return sa, nil
}

func buildImage(ctx *pulumi.Context, cfg serviceConfig, deps ...pulumi.Resource) (*docker.Image, error) {
	// tag by source hash so unchanged code does not trigger a new revision
	hash, err := common.GenerateHash("../")
	if err != nil {
		return nil, err
	}

	return docker.NewImage(ctx, "apiImage", &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),
			Dockerfile: pulumi.String("../cmd/api/Dockerfile"),
		},
		ImageName: pulumi.String(cfg.imageName(hash)),
	},
		pulumi.DependsOn(deps),
	)
}

func apiServiceAccount(ctx *pulumi.Context, cfg serviceConfig, prov *gcp.Provider) (*serviceaccount.Account, error) {
	sa, err := serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("cashflow-api"),
		DisplayName: pulumi.String("Cashflow API"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	member := sa.Email.ApplyT(func(email string) string {
		return "serviceAccount:" + email
	}).(pulumi.StringOutput)

	for _, name := range slices.Sorted(maps.Keys(apiRoles)) {
		_, err := projects.NewIAMMember(ctx, name, &projects.IAMMemberArgs{
			Project: pulumi.String(cfg.ProjectID),
			Role:    pulumi.String(apiRoles[name]),
			Member:  member,
		},
			pulumi.Provider(prov),
		)
		if err != nil {
			return nil, err
		}
	}

	return sa, nil
}

func containerEnv(cfg serviceConfig, db *firestore.Database) cloudrun.ServiceTemplateSpecContainerEnvArray {
	vars := cfg.env()
	out := make(cloudrun.ServiceTemplateSpecContainerEnvArray, 0, len(vars)+1)
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		out = append(out, &cloudrun.ServiceTemplateSpecContainerEnvArgs{
			Name:  pulumi.String(name),
			Value: pulumi.String(vars[name]),
		})
	}
	return append(out, &cloudrun.ServiceTemplateSpecContainerEnvArgs{
		Name:  pulumi.String("FIRESTOREDATABASE"),
		Value: db.Name,
	})
}

func deployService(ctx *pulumi.Context,
	cfg serviceConfig,
	img *docker.Image,
	sa *serviceaccount.Account,
	db *firestore.Database,
	prov *gcp.Provider,
	deps ...pulumi.Resource) (*cloudrun.Service, error) {
	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Location: pulumi.String(cfg.Region),
		Template: &cloudrun.ServiceTemplateArgs{
			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				Annotations: pulumi.ToStringMap(cfg.annotations()),
			},
			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: sa.Email,
				TimeoutSeconds:     pulumi.Int(cfg.TimeoutSeconds),
				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(apiPort),
							},
						},
						Envs: containerEnv(cfg, db),
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(deps),
	)
}
