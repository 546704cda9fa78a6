package registry

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// BackendHealth is one configured mirror's reachability result, as
// reported by "doctor backends" (spec.md's extended CLI surface).
type BackendHealth struct {
	Name    string
	Reached bool
	Detail  string
}

// CheckS3 confirms an S3-backed package mirror's credentials are live by
// calling STS GetCallerIdentity — the same call the teacher's
// validator.AWSValidator uses to tell a leaked key is still active,
// repurposed here to confirm a configured mirror is still reachable.
func CheckS3(ctx context.Context, region string) BackendHealth {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return BackendHealth{Name: "s3", Reached: false, Detail: fmt.Sprintf("loading AWS config: %v", err)}
	}
	client := sts.NewFromConfig(cfg)
	identity, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return BackendHealth{Name: "s3", Reached: false, Detail: fmt.Sprintf("credentials rejected: %v", err)}
	}
	return BackendHealth{
		Name:    "s3",
		Reached: true,
		Detail:  fmt.Sprintf("account %s, identity %s", aws.ToString(identity.Account), aws.ToString(identity.Arn)),
	}
}

// CheckAzure confirms an Azure-Blob-backed package mirror is reachable by
// listing containers against connStr, mirroring validator.AzureStorageValidator's
// list-containers probe.
func CheckAzure(ctx context.Context, connStr string) BackendHealth {
	client, err := azblob.NewClientFromConnectionString(connStr, nil)
	if err != nil {
		return BackendHealth{Name: "azure-blob", Reached: false, Detail: fmt.Sprintf("creating client: %v", err)}
	}
	pager := client.NewListContainersPager(nil)
	if _, err := pager.NextPage(ctx); err != nil {
		return BackendHealth{Name: "azure-blob", Reached: false, Detail: fmt.Sprintf("listing containers: %v", err)}
	}
	return BackendHealth{Name: "azure-blob", Reached: true, Detail: "container listing succeeded"}
}
