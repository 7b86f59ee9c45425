package repos

import (
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/joa2pac/conexa-star-wars-api/internal/model"
	"github.com/joa2pac/conexa-star-wars-api/internal/store"
)

// ErrEmptyUpdate is reported when a partial-update payload carries no field
// that survives the merge policy; the store is never called in that case.
var ErrEmptyUpdate = errors.New("no updatable fields in payload")

type updateField struct {
	name  string
	value types.AttributeValue
}

// buildUpdate assembles a SET expression covering exactly the given fields.
func buildUpdate(fields []updateField) (store.Update, error) {
	if len(fields) == 0 {
		return store.Update{}, ErrEmptyUpdate
	}
	clauses := make([]string, 0, len(fields))
	names := make(map[string]string, len(fields))
	values := make(map[string]types.AttributeValue, len(fields))
	for _, f := range fields {
		clauses = append(clauses, "#"+f.name+" = :"+f.name)
		names["#"+f.name] = f.name
		values[":"+f.name] = f.value
	}
	return store.Update{
		Expression: "SET " + strings.Join(clauses, ", "),
		Names:      names,
		Values:     values,
	}, nil
}

// movieUpdate applies the merge policy to a movie patch: title only when
// non-empty, deleted whenever defined (false included). Nothing else is ever
// merged, so a client cannot clear title to the empty string through a patch.
func movieUpdate(p model.MoviePatch) (store.Update, error) {
	var fields []updateField
	if p.Title != "" {
		fields = append(fields, updateField{"title", &types.AttributeValueMemberS{Value: p.Title}})
	}
	if p.Deleted != nil {
		fields = append(fields, updateField{"deleted", &types.AttributeValueMemberBOOL{Value: *p.Deleted}})
	}
	return buildUpdate(fields)
}

// detailUpdate applies the same policy to a detail patch: synopsis and cast
// only when non-empty, deleted whenever defined.
func detailUpdate(p model.MovieDetailPatch) (store.Update, error) {
	var fields []updateField
	if p.Synopsis != "" {
		fields = append(fields, updateField{"synopsis", &types.AttributeValueMemberS{Value: p.Synopsis}})
	}
	if len(p.Cast) > 0 {
		cast, err := attributevalue.Marshal(p.Cast)
		if err != nil {
			return store.Update{}, err
		}
		fields = append(fields, updateField{"cast", cast})
	}
	if p.Deleted != nil {
		fields = append(fields, updateField{"deleted", &types.AttributeValueMemberBOOL{Value: *p.Deleted}})
	}
	return buildUpdate(fields)
}
