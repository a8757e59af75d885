package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/midiparse/model"
	"github.com/stretchr/testify/assert"
)

// fakeDynamo keeps items in memory, keyed by PK.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items      map[string]map[string]*dynamodb.AttributeValue
	batchSizes []int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) BatchGetItemWithContext(_ aws.Context, in *dynamodb.BatchGetItemInput, _ ...request.Option) (*dynamodb.BatchGetItemOutput, error) {
	out := &dynamodb.BatchGetItemOutput{Responses: make(map[string][]map[string]*dynamodb.AttributeValue)}
	for table, ka := range in.RequestItems {
		f.batchSizes = append(f.batchSizes, len(ka.Keys))
		for _, key := range ka.Keys {
			if item, ok := f.items[*key["PK"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func TestPutAndGet(t *testing.T) {
	fake := newFakeDynamo()
	c := New(fake, "summaries")
	ctx := context.Background()

	s := model.Summary{
		Name:                "a.mid",
		Format:              1,
		NumTracks:           2,
		DivisionType:        "metrical",
		Resolution:          480,
		MicrosecondsPerBeat: 500000,
		Tracks:              []model.TrackSummary{{Name: "Piano", NumEvents: 10, NumNoteOns: 4, NumNoteOffs: 4}},
	}
	assert.NoError(t, c.Put(ctx, s))

	got, err := c.GetSummaries(ctx, []string{"a.mid", "missing.mid"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]model.Summary{"a.mid": s}, got)
}

func TestGetSummariesBatches(t *testing.T) {
	fake := newFakeDynamo()
	c := New(fake, "summaries")
	ctx := context.Background()

	var names []string
	for i := 0; i < 250; i++ {
		name := fmt.Sprintf("%03d.mid", i)
		names = append(names, name)
		assert.NoError(t, c.Put(ctx, model.Summary{Name: name}))
	}

	got, err := c.GetSummaries(ctx, names)
	assert.NoError(t, err)
	assert.Len(t, got, 250)
	assert.Equal(t, []int{100, 100, 50}, fake.batchSizes)
}

func TestGetSummariesEmpty(t *testing.T) {
	fake := newFakeDynamo()
	got, err := New(fake, "summaries").GetSummaries(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, fake.batchSizes)
}
