package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentCommit is returned when another writer committed a
// checkpoint with the same version first.
var ErrConcurrentCommit = errors.New("concurrent checkpoint commit detected")

// DDBClient is the subset of the DynamoDB API the checkpoint store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Checkpoint identifies one committed snapshot.
type Checkpoint struct {
	Version     uint64
	SnapshotKey string
}

// CheckpointStore records which snapshot blob is the current one. S3
// has no compare-and-swap, so the pointer lives in DynamoDB instead:
// each commit writes a new monotonically increasing version with a
// conditional put, and readers query for the highest version. Multiple
// writers dumping the same table can race safely; the loser of a
// version collision gets ErrConcurrentCommit and can retry.
//
// Table schema:
//   - Partition key: table_id (string)
//   - Sort key: version (number)
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name tt-checkpoints \
//	  --attribute-definitions AttributeName=table_id,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=table_id,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CheckpointStore struct {
	client    DDBClient
	tableName string
	tableID   string
}

// NewCheckpointStore creates a checkpoint store. tableID identifies the
// transposition table, e.g. "s3://bucket/engine/tt".
func NewCheckpointStore(client DDBClient, tableName, tableID string) *CheckpointStore {
	return &CheckpointStore{
		client:    client,
		tableName: tableName,
		tableID:   tableID,
	}
}

// Latest returns the most recently committed checkpoint, or ok=false
// if nothing has been committed yet.
func (c *CheckpointStore) Latest(ctx context.Context) (Checkpoint, bool, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("table_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: c.tableID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return Checkpoint{}, false, fmt.Errorf("failed to query checkpoints: %w", err)
	}

	if len(resp.Items) == 0 {
		return Checkpoint{}, false, nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return Checkpoint{}, false, errors.New("invalid version attribute")
	}
	keyAttr, ok := item["snapshot_key"].(*types.AttributeValueMemberS)
	if !ok {
		return Checkpoint{}, false, errors.New("invalid snapshot_key attribute")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return Checkpoint{}, false, fmt.Errorf("failed to parse version: %w", err)
	}

	return Checkpoint{Version: version, SnapshotKey: keyAttr.Value}, true, nil
}

// Commit atomically records snapshotKey as the next checkpoint. It
// returns the committed checkpoint, or ErrConcurrentCommit if another
// writer claimed the version first.
func (c *CheckpointStore) Commit(ctx context.Context, snapshotKey string) (Checkpoint, error) {
	latest, _, err := c.Latest(ctx)
	if err != nil {
		return Checkpoint{}, err
	}

	next := Checkpoint{Version: latest.Version + 1, SnapshotKey: snapshotKey}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"table_id":     &types.AttributeValueMemberS{Value: c.tableID},
			"version":      &types.AttributeValueMemberN{Value: strconv.FormatUint(next.Version, 10)},
			"snapshot_key": &types.AttributeValueMemberS{Value: next.SnapshotKey},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return Checkpoint{}, ErrConcurrentCommit
		}
		return Checkpoint{}, fmt.Errorf("failed to commit checkpoint: %w", err)
	}

	return next, nil
}
