package repotests

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// Schema of the DynamoDB table
	dynamoDBTableName    = "repo-index"
	dynamoDBPartitionKey = "pid"
	ownerIDAttribute     = "ownerId"
	labelAttribute       = "label"
)

// DynamoDBIndexStore verifies index entries in DynamoDB. The service is expected to
// store each entry as an item in the "repo-index" table, keyed by PID.
type DynamoDBIndexStore struct {
	dynamodb *dynamodb.Client
}

func NewDynamoDBIndexStore(endpoint string) (*DynamoDBIndexStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &DynamoDBIndexStore{dynamodb: client}, nil
}

func (d *DynamoDBIndexStore) Name() string {
	return "dynamodb"
}

func (d *DynamoDBIndexStore) GetEntry(ctx context.Context, pid string) (IndexEntry, bool, error) {
	result, err := d.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(dynamoDBTableName),
		ConsistentRead: aws.Bool(true),
		Key: map[string]types.AttributeValue{
			dynamoDBPartitionKey: &types.AttributeValueMemberS{Value: pid},
		},
	})
	if err != nil {
		return IndexEntry{}, false, err
	}
	if result.Item == nil {
		return IndexEntry{}, false, nil
	}
	return IndexEntry{
		PID:     stringAttribute(result.Item, dynamoDBPartitionKey),
		OwnerID: stringAttribute(result.Item, ownerIDAttribute),
		Label:   stringAttribute(result.Item, labelAttribute),
	}, true, nil
}

func (d *DynamoDBIndexStore) Reset(ctx context.Context) error {
	var requests []types.WriteRequest
	paginator := dynamodb.NewScanPaginator(d.dynamodb, &dynamodb.ScanInput{
		TableName:            aws.String(dynamoDBTableName),
		ProjectionExpression: aws.String(dynamoDBPartitionKey),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, item := range page.Items {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						dynamoDBPartitionKey: item[dynamoDBPartitionKey],
					},
				},
			})
		}
	}
	return d.batchWriteRequests(ctx, requests)
}

// batchWriteRequests executes a list of write requests (PutItem or DeleteItem)
// in batches of 25, which is the maximum BatchWriteItem can handle.
func (d *DynamoDBIndexStore) batchWriteRequests(ctx context.Context, requests []types.WriteRequest) error {
	for len(requests) > 0 {
		batchSize := len(requests)
		if batchSize > 25 {
			batchSize = 25
		}
		batch := requests[:batchSize]
		requests = requests[batchSize:]

		_, err := d.dynamodb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{dynamoDBTableName: batch},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func stringAttribute(item map[string]types.AttributeValue, name string) string {
	if attr, ok := item[name].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}
