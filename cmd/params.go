package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/s0up4200/stctl/swiftype"
)

// readRecords reads a JSON object or array of objects from path, or from
// stdin when path is "-". Numbers are kept as json.Number.
func readRecords(path string, stdin io.Reader) ([]swiftype.Record, bool, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data = bytes.TrimSpace(data)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if len(data) > 0 && data[0] == '[' {
		var records []swiftype.Record
		if err := dec.Decode(&records); err != nil {
			return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return records, true, nil
	}

	var record swiftype.Record
	if err := dec.Decode(&record); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return []swiftype.Record{record}, false, nil
}

// parseAssignments turns key=value flags into a record. Values that parse
// as JSON (numbers, booleans, arrays) keep their type.
func parseAssignments(assignments []string) (swiftype.Record, error) {
	out := make(swiftype.Record, len(assignments))
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", a)
		}
		out[key] = jsonOrString(value)
	}
	return out, nil
}

func jsonOrString(value string) any {
	dec := json.NewDecoder(strings.NewReader(value))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err == nil && !dec.More() {
		if _, isString := v.(string); !isString {
			return v
		}
	}
	return value
}

// splitTypedField splits "books.genre" into its document type and field.
// Without a prefix the field belongs to defaultType.
func splitTypedField(typed, defaultType string) (string, string, error) {
	docType, field, ok := strings.Cut(typed, ".")
	if !ok {
		if defaultType == "" {
			return "", "", fmt.Errorf("%q needs a document type prefix, e.g. books.%s", typed, typed)
		}
		return defaultType, typed, nil
	}
	if docType == "" || field == "" {
		return "", "", fmt.Errorf("invalid field %q", typed)
	}
	return docType, field, nil
}

// parseDay parses a YYYY-MM-DD flag value; empty means unset.
func parseDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(swiftype.DateFormat, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return &t, nil
}

// confirm asks a yes/no question on the terminal
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}
