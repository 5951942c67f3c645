/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// Response is the read-only result of one HTTP exchange. Any status code,
// including 4xx and 5xx, is a valid Response.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string

	once   sync.Once
	doc    any
	docErr error
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling %s %s response: %w", r.Method, r.Path, err)
	}

	return nil
}

// Document returns the body parsed into generic JSON values.
func (r *Response) Document() (any, error) {
	r.once.Do(func() {
		if err := json.Unmarshal(r.Body, &r.doc); err != nil {
			r.docErr = fmt.Errorf("response body is not valid JSON: %w", err)
		}
	})

	return r.doc, r.docErr
}

// Field extracts a value by dot path, e.g. "order._id", "user.email" or
// "data[0]._id". The boolean is false when the path does not resolve or
// resolves to JSON null.
func (r *Response) Field(path string) (any, bool) {
	doc, err := r.Document()
	if err != nil {
		return nil, false
	}

	value, ok := lookupPath(doc, path)
	if !ok || value == nil {
		return nil, false
	}

	return value, true
}

// Text extracts a string field, returning "" when absent or not a string.
func (r *Response) Text(path string) string {
	value, ok := r.Field(path)
	if !ok {
		return ""
	}

	s, _ := value.(string)

	return s
}

// Success returns the envelope's success flag.
func (r *Response) Success() bool {
	value, ok := r.Field("success")
	if !ok {
		return false
	}

	b, _ := value.(bool)

	return b
}

// Message returns the envelope's message.
func (r *Response) Message() string {
	return r.Text("message")
}

func (r *Response) String() string {
	return fmt.Sprintf("%s %s -> %d %s", r.Method, r.Path, r.StatusCode, string(r.Body))
}

// GomegaString keeps failure output to the exchange itself.
func (r *Response) GomegaString() string {
	return r.String()
}

// lookupPath walks a generic JSON document.
func lookupPath(doc any, path string) (any, bool) {
	current := doc

	for _, segment := range strings.Split(strings.TrimPrefix(path, "$."), ".") {
		if segment == "" {
			continue
		}

		field := segment

		var indices []int

		if i := strings.Index(segment, "["); i >= 0 {
			field = segment[:i]

			for _, raw := range strings.Split(strings.TrimSuffix(segment[i+1:], "]"), "][") {
				index, err := strconv.Atoi(raw)
				if err != nil {
					return nil, false
				}

				indices = append(indices, index)
			}
		}

		if field != "" {
			object, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}

			if current, ok = object[field]; !ok {
				return nil, false
			}
		}

		for _, index := range indices {
			array, ok := current.([]any)
			if !ok || index < 0 || index >= len(array) {
				return nil, false
			}

			current = array[index]
		}
	}

	return current, true
}
