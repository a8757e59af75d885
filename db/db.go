package db

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/midiparse/model"
)

// dynamodb caps BatchGetItem at 100 keys
const maxBatchKeys = 100

const maxBatchAttempts = 3

type record struct {
	PK      string        `dynamodbav:"PK"`
	Summary model.Summary `dynamodbav:"Summary"`
}

// Catalog stores file summaries keyed by file name.
type Catalog struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func New(client dynamodbiface.DynamoDBAPI, table string) *Catalog {
	return &Catalog{client: client, table: table}
}

// NewFromConfig connects to dynamodb. An empty endpoint uses the default
// AWS endpoint resolution.
func NewFromConfig(endpoint, region, table string) (*Catalog, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}
	return New(dynamodb.New(sess), table), nil
}

func (c *Catalog) Put(ctx context.Context, s model.Summary) error {
	item, err := dynamodbattribute.MarshalMap(record{PK: s.Name, Summary: s})
	if err != nil {
		return fmt.Errorf("marshalling summary for %s: %w", s.Name, err)
	}
	_, err = c.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting %s: %w", s.Name, err)
	}
	return nil
}

func (c *Catalog) GetSummaries(ctx context.Context, names []string) (map[string]model.Summary, error) {
	res := make(map[string]model.Summary)
	for start := 0; start < len(names); start += maxBatchKeys {
		end := start + maxBatchKeys
		if end > len(names) {
			end = len(names)
		}
		if err := c.getBatch(ctx, names[start:end], res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (c *Catalog) getBatch(ctx context.Context, names []string, res map[string]model.Summary) error {
	var keys []map[string]*dynamodb.AttributeValue
	for _, name := range names {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(name)},
		})
	}

	requestItems := map[string]*dynamodb.KeysAndAttributes{
		c.table: {Keys: keys},
	}
	for attempt := 0; attempt < maxBatchAttempts && len(requestItems) > 0; attempt++ {
		out, err := c.client.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: requestItems,
		})
		if err != nil {
			return fmt.Errorf("error from DynamoDB: %w", err)
		}

		for _, item := range out.Responses[c.table] {
			var r record
			if err := dynamodbattribute.UnmarshalMap(item, &r); err != nil {
				return fmt.Errorf("unmarshalling catalog item: %w", err)
			}
			res[r.PK] = r.Summary
		}
		requestItems = out.UnprocessedKeys
	}
	if len(requestItems) > 0 {
		return fmt.Errorf("DynamoDB left %d keys unprocessed", len(requestItems[c.table].Keys))
	}
	return nil
}
