package store

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeAPI struct {
	getOut    *dynamodb.GetItemOutput
	putIn     *dynamodb.PutItemInput
	scanIn    *dynamodb.ScanInput
	scanOut   *dynamodb.ScanOutput
	updateIn  *dynamodb.UpdateItemInput
	updateOut *dynamodb.UpdateItemOutput
	deleteIn  *dynamodb.DeleteItemInput
	err       error
}

func (f *fakeAPI) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return f.getOut, f.err
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeAPI) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanIn = in
	return f.scanOut, f.err
}

func (f *fakeAPI) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	return f.updateOut, f.err
}

func (f *fakeAPI) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deleteIn = in
	return &dynamodb.DeleteItemOutput{}, f.err
}

type record struct {
	MovieID string `dynamodbav:"movieId"`
	Title   string `dynamodbav:"title"`
}

func TestGetPresent(t *testing.T) {
	api := &fakeAPI{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"movieId": &types.AttributeValueMemberS{Value: "m1"},
		"title":   &types.AttributeValueMemberS{Value: "A New Hope"},
	}}}
	d := NewDynamo(api)
	var out record
	found, err := d.Get(context.Background(), "movies", Key("movieId", "m1"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}
	if out.Title != "A New Hope" {
		t.Fatalf("unexpected title %q", out.Title)
	}
}

func TestGetAbsent(t *testing.T) {
	d := NewDynamo(&fakeAPI{getOut: &dynamodb.GetItemOutput{}})
	var out record
	found, err := d.Get(context.Background(), "movies", Key("movieId", "missing"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected absent record")
	}
}

func TestGetPropagatesError(t *testing.T) {
	want := errors.New("throttled")
	d := NewDynamo(&fakeAPI{err: want})
	var out record
	if _, err := d.Get(context.Background(), "movies", Key("movieId", "m1"), &out); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestPutMarshalsItem(t *testing.T) {
	api := &fakeAPI{}
	d := NewDynamo(api)
	if err := d.Put(context.Background(), "movies", record{MovieID: "m1", Title: "Jedi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.putIn == nil || *api.putIn.TableName != "movies" {
		t.Fatal("expected put against movies table")
	}
	got, ok := api.putIn.Item["title"].(*types.AttributeValueMemberS)
	if !ok || got.Value != "Jedi" {
		t.Fatalf("unexpected marshaled title: %#v", api.putIn.Item["title"])
	}
}

func TestScanAppliesFilter(t *testing.T) {
	api := &fakeAPI{scanOut: &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{
		{"movieId": &types.AttributeValueMemberS{Value: "m1"}},
	}}}
	d := NewDynamo(api)
	var out []record
	filter := &Filter{
		Expression: "movieId = :movieId",
		Values:     map[string]types.AttributeValue{":movieId": &types.AttributeValueMemberS{Value: "m1"}},
	}
	if err := d.Scan(context.Background(), "movie_details", filter, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.scanIn.FilterExpression == nil || *api.scanIn.FilterExpression != "movieId = :movieId" {
		t.Fatal("filter expression not forwarded")
	}
	if len(out) != 1 || out[0].MovieID != "m1" {
		t.Fatalf("unexpected scan result: %+v", out)
	}
}

func TestUpdateReturnsNewValues(t *testing.T) {
	api := &fakeAPI{updateOut: &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
		"title": &types.AttributeValueMemberS{Value: "Renamed"},
	}}}
	d := NewDynamo(api)
	upd := Update{
		Expression: "SET #title = :title",
		Names:      map[string]string{"#title": "title"},
		Values:     map[string]types.AttributeValue{":title": &types.AttributeValueMemberS{Value: "Renamed"}},
	}
	attrs, err := d.Update(context.Background(), "movies", Key("movieId", "m1"), upd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.updateIn.ReturnValues != types.ReturnValueUpdatedNew {
		t.Fatal("expected UPDATED_NEW return values")
	}
	if got := attrs["title"].(*types.AttributeValueMemberS).Value; got != "Renamed" {
		t.Fatalf("unexpected attribute value %q", got)
	}
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{}
	d := NewDynamo(api)
	if err := d.Delete(context.Background(), "movies", Key("movieId", "m1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.deleteIn == nil || *api.deleteIn.TableName != "movies" {
		t.Fatal("expected delete against movies table")
	}
}
