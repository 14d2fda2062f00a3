package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"quizadmin/internal/model"
)

// Param is one query-string entry.
type Param struct {
	Key   string
	Value any
}

// Query is an ordered set of query-string parameters. Encoding keeps
// insertion order, unlike url.Values which sorts by key.
type Query []Param

// Set appends key=value, or replaces the value of an existing key in place.
func (q Query) Set(key string, value any) Query {
	for i := range q {
		if q[i].Key == key {
			q[i].Value = value
			return q
		}
	}
	return append(q, Param{Key: key, Value: value})
}

// Encode renders the query without the leading "?". Nil values, including
// typed nil pointers, are omitted; everything else is stringified.
func (q Query) Encode() string {
	var b strings.Builder
	for _, p := range q {
		s, ok := stringify(p.Value)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(s))
	}
	return b.String()
}

// String returns "?<encoded>" or "" for an empty result.
func (q Query) String() string {
	if qs := q.Encode(); qs != "" {
		return "?" + qs
	}
	return ""
}

// ParseQuery decodes an encoded query back into an ordered Query whose values
// are strings.
func ParseQuery(raw string) (Query, error) {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil, nil
	}
	var out Query
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("decode key %q: %w", k, err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("decode value of %q: %w", key, err)
		}
		out = append(out, Param{Key: key, Value: value})
	}
	return out, nil
}

// ListQueryParams converts a ListQuery into the ordered page, limit, search,
// sort, order parameters. Unset fields are nil and therefore dropped.
func ListQueryParams(lq model.ListQuery) Query {
	q := make(Query, 0, 5)
	q = append(q, Param{Key: "page", Value: nonZero(lq.Page)})
	q = append(q, Param{Key: "limit", Value: nonZero(lq.Limit)})
	q = append(q, Param{Key: "search", Value: nonEmpty(lq.Search)})
	q = append(q, Param{Key: "sort", Value: nonEmpty(lq.Sort)})
	q = append(q, Param{Key: "order", Value: nonEmpty(string(lq.Order))})
	return q
}

func nonZero(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nonEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func stringify(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}
