package repos

import (
	"context"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/joa2pac/conexa-star-wars-api/internal/store"
)

// fakeStore is an in-memory store.Table. It applies SET update expressions
// for real so merge behavior is observable on the stored records.
type fakeStore struct {
	tables  map[string][]map[string]types.AttributeValue
	updates []store.Update
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{tables: make(map[string][]map[string]types.AttributeValue)}
}

func (f *fakeStore) find(table string, key map[string]types.AttributeValue) int {
	for i, item := range f.tables[table] {
		match := true
		for k, v := range key {
			if !reflect.DeepEqual(item[k], v) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func (f *fakeStore) Get(_ context.Context, table string, key map[string]types.AttributeValue, out any) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	i := f.find(table, key)
	if i < 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(f.tables[table][i], out)
}

func (f *fakeStore) Put(_ context.Context, table string, item any) error {
	if f.err != nil {
		return f.err
	}
	m, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	if i := f.find(table, map[string]types.AttributeValue{"movieId": m["movieId"]}); i >= 0 {
		f.tables[table][i] = m
		return nil
	}
	f.tables[table] = append(f.tables[table], m)
	return nil
}

func (f *fakeStore) Scan(_ context.Context, table string, filter *store.Filter, out any) error {
	if f.err != nil {
		return f.err
	}
	items := f.tables[table]
	if filter != nil {
		// The only filter shape the repos build is "movieId = :movieId".
		want := filter.Values[":movieId"]
		var kept []map[string]types.AttributeValue
		for _, item := range items {
			if reflect.DeepEqual(item["movieId"], want) {
				kept = append(kept, item)
			}
		}
		items = kept
	}
	return attributevalue.UnmarshalListOfMaps(items, out)
}

func (f *fakeStore) Update(_ context.Context, table string, key map[string]types.AttributeValue, upd store.Update) (map[string]types.AttributeValue, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updates = append(f.updates, upd)
	i := f.find(table, key)
	if i < 0 {
		// DynamoDB upserts on update: a missing key becomes a new record.
		item := make(map[string]types.AttributeValue, len(key))
		for k, v := range key {
			item[k] = v
		}
		f.tables[table] = append(f.tables[table], item)
		i = len(f.tables[table]) - 1
	}
	item := f.tables[table][i]
	changed := make(map[string]types.AttributeValue)
	for _, clause := range strings.Split(strings.TrimPrefix(upd.Expression, "SET "), ", ") {
		parts := strings.Split(clause, " = ")
		name := upd.Names[parts[0]]
		val := upd.Values[parts[1]]
		item[name] = val
		changed[name] = val
	}
	return changed, nil
}

func (f *fakeStore) Delete(_ context.Context, table string, key map[string]types.AttributeValue) error {
	if f.err != nil {
		return f.err
	}
	if i := f.find(table, key); i >= 0 {
		f.tables[table] = append(f.tables[table][:i], f.tables[table][i+1:]...)
	}
	return nil
}
