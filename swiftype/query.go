package swiftype

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// queryPair is one key/value of an encoded query string.
type queryPair struct {
	key   string
	value string
}

// encodeQuery flattens params into a query string using bracketed keys:
//
//	{"filters": {"videos": {"category_id": ["23", "25"]}}}
//	filters[videos][category_id][]=23&filters[videos][category_id][]=25
//
// Map keys are emitted in sorted order, sequence elements in their original
// order. Nil values are skipped. Bracket notation has no form for an empty
// sequence or mapping, so those produce no pairs and do not reach the server;
// send them with POST or PUT, whose JSON body keeps them.
func encodeQuery(params Params) string {
	pairs := flattenQuery(params)
	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String()
}

func flattenQuery(params Params) []queryPair {
	var pairs []queryPair
	for _, key := range sortedKeys(params) {
		pairs = appendQueryValue(pairs, key, params[key])
	}
	return pairs
}

func appendQueryValue(pairs []queryPair, key string, value any) []queryPair {
	switch v := value.(type) {
	case nil:
		return pairs
	case Params:
		return appendQueryMap(pairs, key, v)
	case Record:
		return appendQueryMap(pairs, key, v)
	case map[string]any:
		return appendQueryMap(pairs, key, v)
	case []any:
		for _, item := range v {
			pairs = appendQueryValue(pairs, key+"[]", item)
		}
		return pairs
	case []string:
		for _, item := range v {
			pairs = append(pairs, queryPair{key: key + "[]", value: item})
		}
		return pairs
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return pairs
		}
		return appendQueryValue(pairs, key, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		for i := 0; i < rv.Len(); i++ {
			pairs = appendQueryValue(pairs, key+"[]", rv.Index(i).Interface())
		}
		return pairs
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return appendQueryMap(pairs, key, m)
	}

	return append(pairs, queryPair{key: key, value: scalarString(value)})
}

func appendQueryMap(pairs []queryPair, prefix string, m map[string]any) []queryPair {
	for _, k := range sortedKeys(m) {
		pairs = appendQueryValue(pairs, prefix+"["+k+"]", m[k])
	}
	return pairs
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
