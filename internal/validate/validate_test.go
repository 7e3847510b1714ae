package validate

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func objectTarget(t *testing.T, body string) *Target {
	t.Helper()
	target, err := NewTarget([]byte(body), nil, nil)
	require.NoError(t, err)
	return target
}

func TestNewTarget(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		target, err := NewTarget(nil, map[string]string{"userId": "x"}, nil)
		require.NoError(t, err)
		require.Nil(t, target.Fields)
		require.Nil(t, target.List)
		require.Equal(t, "x", target.Params["userId"])
	})

	t.Run("object body", func(t *testing.T) {
		target := objectTarget(t, `{"title":"hi"}`)
		require.Equal(t, "hi", target.Fields["title"])
	})

	t.Run("array body", func(t *testing.T) {
		target := objectTarget(t, `[{"type":"P"}]`)
		require.Len(t, target.List, 1)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := NewTarget([]byte(`{"title":`), nil, nil)
		require.Error(t, err)
	})
}

func TestShapeChecks(t *testing.T) {
	tests := []struct {
		name    string
		check   Check
		body    string
		message string // empty means the check passes
	}{
		{"required present", Required("email", "m"), `{"email":"a@b.com"}`, ""},
		{"required missing", Required("email", "m"), `{}`, "m"},
		{"required blank", Required("email", "m"), `{"email":"  "}`, "m"},
		{"required null", Required("email", "m"), `{"email":null}`, "m"},
		{"string ok", IsString("name", "m"), `{"name":"A"}`, ""},
		{"string wrong type", IsString("name", "m"), `{"name":3}`, "m"},
		{"string missing", IsString("name", "m"), `{}`, "m"},
		{"bool ok", IsBool("isDone", "m"), `{"isDone":false}`, ""},
		{"bool wrong type", IsBool("isDone", "m"), `{"isDone":"no"}`, "m"},
		{"array ok", IsArray("paragraphs", "m"), `{"paragraphs":[]}`, ""},
		{"array wrong type", IsArray("paragraphs", "m"), `{"paragraphs":{}}`, "m"},
		{"maxlen ok", MaxLen("title", 5, "m"), `{"title":"short"}`, ""},
		{"maxlen trimmed", MaxLen("title", 5, "m"), `{"title":"short   "}`, ""},
		{"maxlen over", MaxLen("title", 5, "m"), `{"title":"longer"}`, "m"},
		{"maxlen korean runes", MaxLen("title", 3, "m"), `{"title":"글제목"}`, ""},
		{"between ok", LenBetween("password", 6, 20, "m"), `{"password":"secret1"}`, ""},
		{"between short", LenBetween("password", 6, 20, "m"), `{"password":"five5"}`, "m"},
		{"between long", LenBetween("password", 6, 20, "m"), `{"password":"123456789012345678901"}`, "m"},
		{"email ok", IsEmail("email", "m"), `{"email":"a@b.com"}`, ""},
		{"email bad", IsEmail("email", "m"), `{"email":"not-an-email"}`, "m"},
		{"oneof ok", OneOf("type", []string{"P", "R"}, "m"), `{"type":"R"}`, ""},
		{"oneof bad", OneOf("type", []string{"P", "R"}, "m"), `{"type":"X"}`, "m"},
		{"oneof missing", OneOf("type", []string{"P", "R"}, "m"), `{}`, "m"},
		{"absent ok", Absent("blocks", "m"), `{"title":"t"}`, ""},
		{"absent violated", Absent("blocks", "m"), `{"blocks":[]}`, "m"},
		{"array body ok", ArrayBody("m"), `[1,2]`, ""},
		{"array body object", ArrayBody("m"), `{"a":1}`, "m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := objectTarget(t, tt.body)
			failure := tt.check(context.Background(), target)
			if tt.message == "" {
				require.Nil(t, failure)
				return
			}
			require.NotNil(t, failure)
			require.Equal(t, tt.message, failure.Message)
			require.Equal(t, http.StatusBadRequest, failure.Status)
		})
	}
}

func TestQueryOneOf(t *testing.T) {
	check := QueryOneOf("state", []string{"editing", "done"}, "m")

	target := &Target{Query: url.Values{}}
	require.Nil(t, check(context.Background(), target))

	target.Query.Set("state", "done")
	require.Nil(t, check(context.Background(), target))

	target.Query.Set("state", "finished")
	failure := check(context.Background(), target)
	require.NotNil(t, failure)
	require.Equal(t, "m", failure.Message)
}

func TestUUIDParam(t *testing.T) {
	check := UUIDParam("userId", "bad id")

	target := &Target{Params: map[string]string{"userId": "3e0a8b8f-3c7e-4a3f-9f2e-0f6a4f6d2d11"}}
	require.Nil(t, check(context.Background(), target))

	target.Params["userId"] = "not-a-uuid"
	failure := check(context.Background(), target)
	require.NotNil(t, failure)
	require.Equal(t, http.StatusBadRequest, failure.Status)
	require.Equal(t, "bad id", failure.Message)
}

func TestExistingParam(t *testing.T) {
	exists := func(_ context.Context, id string) (bool, error) {
		return id == "known", nil
	}
	check := ExistingParam("userId", exists, "not found")

	target := &Target{Params: map[string]string{"userId": "known"}}
	require.Nil(t, check(context.Background(), target))

	target.Params["userId"] = "unknown"
	failure := check(context.Background(), target)
	require.NotNil(t, failure)
	require.Equal(t, http.StatusNotFound, failure.Status)
	require.Equal(t, "not found", failure.Message)

	cause := errors.New("store down")
	broken := ExistingParam("userId", func(context.Context, string) (bool, error) {
		return false, cause
	}, "not found")
	failure = broken(context.Background(), target)
	require.NotNil(t, failure)
	require.Equal(t, http.StatusInternalServerError, failure.Status)
	require.ErrorIs(t, failure.Err, cause)
}

func TestChainShortCircuits(t *testing.T) {
	var ran []string
	record := func(name string, failure *Failure) Check {
		return func(context.Context, *Target) *Failure {
			ran = append(ran, name)
			return failure
		}
	}

	chain := Chain{
		record("first", nil),
		record("second", &Failure{Message: "stop", Status: http.StatusBadRequest}),
		record("third", nil),
	}

	failure := chain.Run(context.Background(), &Target{})
	require.NotNil(t, failure)
	require.Equal(t, "stop", failure.Message)
	require.Equal(t, []string{"first", "second"}, ran)
}

func TestChainPasses(t *testing.T) {
	chain := Chain{
		Required("email", "m1"),
		IsEmail("email", "m2"),
	}
	target := objectTarget(t, `{"email":"a@b.com"}`)
	require.Nil(t, chain.Run(context.Background(), target))
}
