package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/imnatewest/ai-fridge-app/internal/domain"
)

// ReminderRepo provides typed DynamoDB operations for the pending reminders
// table. The partition key is the derived notification ID, so Put is a
// natural upsert: rescheduling the same item replaces the previous row.
type ReminderRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewReminderRepo(client *dynamodb.Client, tableName string) *ReminderRepo {
	return &ReminderRepo{client: client, tableName: tableName}
}

func (r *ReminderRepo) Put(ctx context.Context, rem *domain.PendingReminder) error {
	av, err := attributevalue.MarshalMap(rem)
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

// ListByUser returns every pending reminder for one user via GSI.
func (r *ReminderRepo) ListByUser(ctx context.Context, userID string) ([]domain.PendingReminder, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var reminders []domain.PendingReminder
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListDue scans for reminders whose trigger time has passed. The table stays
// small (a few rows per active user), so a filtered scan is fine here.
func (r *ReminderRepo) ListDue(ctx context.Context, now time.Time) ([]domain.PendingReminder, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("trigger_at <= :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
		},
	})
	if err != nil {
		return nil, err
	}
	var reminders []domain.PendingReminder
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *ReminderRepo) Delete(ctx context.Context, notificationID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("notification_id", notificationID),
	})
	return err
}
