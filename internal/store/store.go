// Package store wraps the DynamoDB document API behind the five key-value
// operations the repositories need: get, put, scan, update, delete, each
// parameterized by table name. Failures from the service are propagated
// unchanged; there are no retries and no partial-success semantics.
package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Update is a partial-update instruction for a single record. Expression is a
// DynamoDB update expression ("SET #title = :title, ..."); Names and Values
// hold the attribute name and value placeholders it references.
type Update struct {
	Expression string
	Names      map[string]string
	Values     map[string]types.AttributeValue
}

// Filter narrows a scan to records matching a filter expression.
type Filter struct {
	Expression string
	Values     map[string]types.AttributeValue
}

// Table is the contract repositories talk through. Dynamo implements it; tests
// substitute an in-memory fake.
type Table interface {
	// Get fetches one record by key into out. The bool reports presence; an
	// absent key is not an error.
	Get(ctx context.Context, table string, key map[string]types.AttributeValue, out any) (bool, error)
	// Put inserts or replaces a record.
	Put(ctx context.Context, table string, item any) error
	// Scan reads every record in the table (optionally filtered) into out,
	// which must be a pointer to a slice.
	Scan(ctx context.Context, table string, filter *Filter, out any) error
	// Update applies a partial-update instruction and returns the new values
	// of the updated attributes.
	Update(ctx context.Context, table string, key map[string]types.AttributeValue, upd Update) (map[string]types.AttributeValue, error)
	// Delete removes a record by key. Deleting an absent key is not an error.
	Delete(ctx context.Context, table string, key map[string]types.AttributeValue) error
}

// Key builds a single-attribute string key, which is all both tables use.
func Key(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// API is the subset of the DynamoDB client the adapter calls.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Dynamo is the DynamoDB-backed Table implementation.
type Dynamo struct {
	api API
}

func NewDynamo(api API) *Dynamo { return &Dynamo{api: api} }

func (d *Dynamo) Get(ctx context.Context, table string, key map[string]types.AttributeValue, out any) (bool, error) {
	res, err := d.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return false, err
	}
	if res.Item == nil {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return false, err
	}
	return true, nil
}

func (d *Dynamo) Put(ctx context.Context, table string, item any) error {
	m, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = d.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      m,
	})
	return err
}

func (d *Dynamo) Scan(ctx context.Context, table string, filter *Filter, out any) error {
	in := &dynamodb.ScanInput{TableName: aws.String(table)}
	if filter != nil {
		in.FilterExpression = aws.String(filter.Expression)
		in.ExpressionAttributeValues = filter.Values
	}
	res, err := d.api.Scan(ctx, in)
	if err != nil {
		return err
	}
	return attributevalue.UnmarshalListOfMaps(res.Items, out)
}

func (d *Dynamo) Update(ctx context.Context, table string, key map[string]types.AttributeValue, upd Update) (map[string]types.AttributeValue, error) {
	res, err := d.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key,
		UpdateExpression:          aws.String(upd.Expression),
		ExpressionAttributeNames:  upd.Names,
		ExpressionAttributeValues: upd.Values,
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return nil, err
	}
	return res.Attributes, nil
}

func (d *Dynamo) Delete(ctx context.Context, table string, key map[string]types.AttributeValue) error {
	_, err := d.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	return err
}
