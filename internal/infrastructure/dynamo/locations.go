package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/imnatewest/ai-fridge-app/internal/domain"
)

// LocationRepo provides typed DynamoDB operations for the locations table.
type LocationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewLocationRepo(client *dynamodb.Client, tableName string) *LocationRepo {
	return &LocationRepo{client: client, tableName: tableName}
}

func (r *LocationRepo) Put(ctx context.Context, l *domain.Location) error {
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *LocationRepo) Get(ctx context.Context, locationID string) (*domain.Location, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("location_id", locationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("location not found: %w", domain.ErrNotFound)
	}
	var l domain.Location
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepo) Scan(ctx context.Context) ([]domain.Location, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var locations []domain.Location
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *LocationRepo) Update(ctx context.Context, locationID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("location_id", locationID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// HardDelete permanently removes a location (no soft delete for locations).
func (r *LocationRepo) HardDelete(ctx context.Context, locationID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("location_id", locationID),
	})
	return err
}
