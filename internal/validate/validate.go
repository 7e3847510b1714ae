// Package validate implements the per-route validation pipeline: an
// ordered chain of pure checks over the decoded request that runs before
// a controller executes. A chain short-circuits on its first failure, so
// the declaration order of checks is the order clients observe.
package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Failure is a structured validation failure. Err is only set when an
// existence lookup failed unexpectedly; it is logged server-side and the
// client receives a generic message.
type Failure struct {
	Message string
	Status  int
	Err     error
}

// Target is the decoded request a chain runs against. Fields holds an
// object body, List an array body; at most one of the two is non-nil.
type Target struct {
	Fields  map[string]any
	List    []any
	RawBody []byte
	Params  map[string]string
	Query   url.Values
}

// NewTarget decodes the raw request body. An empty body is valid; a body
// that is not well-formed JSON is not.
func NewTarget(body []byte, params map[string]string, query url.Values) (*Target, error) {
	t := &Target{RawBody: body, Params: params, Query: query}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return t, nil
	}

	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case map[string]any:
		t.Fields = v
	case []any:
		t.List = v
	}
	return t, nil
}

type Check func(ctx context.Context, t *Target) *Failure

type Chain []Check

// Run executes the checks in declaration order and returns the first
// failure, or nil when every check passes.
func (c Chain) Run(ctx context.Context, t *Target) *Failure {
	for _, check := range c {
		if f := check(ctx, t); f != nil {
			return f
		}
	}
	return nil
}

func fail(message string) *Failure {
	return &Failure{Message: message, Status: http.StatusBadRequest}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Required fails when the field is missing, null, or a blank string.
func Required(field, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		value, ok := t.Fields[field]
		if !ok || value == nil {
			return fail(message)
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			return fail(message)
		}
		return nil
	}
}

// IsString fails unless the field is present and a string.
func IsString(field, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		if _, ok := t.Fields[field].(string); !ok {
			return fail(message)
		}
		return nil
	}
}

// IsBool fails unless the field is present and a boolean.
func IsBool(field, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		if _, ok := t.Fields[field].(bool); !ok {
			return fail(message)
		}
		return nil
	}
}

// IsArray fails unless the field is present and an array.
func IsArray(field, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		if _, ok := t.Fields[field].([]any); !ok {
			return fail(message)
		}
		return nil
	}
}

// MaxLen fails when the trimmed string field is longer than max runes.
// Non-string values are left to IsString.
func MaxLen(field string, max int, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		s, ok := t.Fields[field].(string)
		if !ok {
			return nil
		}
		if utf8.RuneCountInString(strings.TrimSpace(s)) > max {
			return fail(message)
		}
		return nil
	}
}

// LenBetween fails when the trimmed string field is outside [min, max].
func LenBetween(field string, min, max int, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		s, ok := t.Fields[field].(string)
		if !ok {
			return nil
		}
		n := utf8.RuneCountInString(strings.TrimSpace(s))
		if n < min || n > max {
			return fail(message)
		}
		return nil
	}
}

// IsEmail fails unless the trimmed field looks like an email address.
func IsEmail(field, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		s, ok := t.Fields[field].(string)
		if !ok || !emailPattern.MatchString(strings.TrimSpace(s)) {
			return fail(message)
		}
		return nil
	}
}

// OneOf fails unless the field is a string contained in allowed.
func OneOf(field string, allowed []string, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		s, ok := t.Fields[field].(string)
		if !ok {
			return fail(message)
		}
		s = strings.TrimSpace(s)
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fail(message)
	}
}

// Absent fails when the field is present at all. Used for fields that
// must be updated through a dedicated endpoint.
func Absent(field, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		if _, ok := t.Fields[field]; ok {
			return fail(message)
		}
		return nil
	}
}

// ArrayBody fails unless the request body is a JSON array.
func ArrayBody(message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		if t.List == nil {
			return fail(message)
		}
		return nil
	}
}

// EachObject fails with message when any body array element is not an
// object, and otherwise applies sub to each element.
func EachObject(message string, sub func(fields map[string]any) *Failure) Check {
	return func(_ context.Context, t *Target) *Failure {
		for _, el := range t.List {
			fields, ok := el.(map[string]any)
			if !ok {
				return fail(message)
			}
			if f := sub(fields); f != nil {
				return f
			}
		}
		return nil
	}
}

// QueryOneOf passes when the query key is absent and fails unless its
// value is contained in allowed.
func QueryOneOf(key string, allowed []string, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		value := t.Query.Get(key)
		if value == "" {
			return nil
		}
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fail(message)
	}
}

// UUIDParam fails when the path parameter is not a well-formed UUID.
func UUIDParam(name, message string) Check {
	return func(_ context.Context, t *Target) *Failure {
		if _, err := uuid.Parse(t.Params[name]); err != nil {
			return fail(message)
		}
		return nil
	}
}

// ExistingParam resolves the path parameter against a repository lookup.
// An absent entity is a 404; a lookup error surfaces as a 500 failure
// whose cause is carried on Err. Chains place this after UUIDParam so a
// malformed id never reaches the store.
func ExistingParam(name string, lookup func(ctx context.Context, id string) (bool, error), notFound string) Check {
	return func(ctx context.Context, t *Target) *Failure {
		found, err := lookup(ctx, t.Params[name])
		if err != nil {
			return &Failure{Status: http.StatusInternalServerError, Err: err}
		}
		if !found {
			return &Failure{Message: notFound, Status: http.StatusNotFound}
		}
		return nil
	}
}
