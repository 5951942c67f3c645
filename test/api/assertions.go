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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"fmt"
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"
)

// HaveStatus succeeds when a *Response has the given status code.
func HaveStatus(expected int) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(resp *Response) (bool, error) {
		if resp == nil {
			return false, fmt.Errorf("response is nil")
		}

		return resp.StatusCode == expected, nil
	}).WithTemplate("Expected status {{.Data}}, got:\n{{.FormattedActual}}", expected)
}

// HaveJSONField succeeds when the field at path equals the literal value.
// Numbers are compared by value, so 2 matches the decoded float64 2.
func HaveJSONField(path string, expected any) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(resp *Response) (bool, error) {
		if resp == nil {
			return false, fmt.Errorf("response is nil")
		}

		if _, err := resp.Document(); err != nil {
			return false, err
		}

		actual, ok := resp.Field(path)
		if !ok {
			return expected == nil, nil
		}

		return jsonValuesEqual(actual, expected), nil
	}).WithTemplate(fmt.Sprintf("Expected field %q to equal {{.Data}} in:\n{{.FormattedActual}}", path), expected)
}

// jsonValuesEqual compares a decoded JSON value with a Go literal.
func jsonValuesEqual(actual, expected any) bool {
	actualNumber, actualIsNumber := toFloat64(actual)
	expectedNumber, expectedIsNumber := toFloat64(expected)

	if actualIsNumber || expectedIsNumber {
		return actualIsNumber && expectedIsNumber && actualNumber == expectedNumber
	}

	return reflect.DeepEqual(actual, expected)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ExpectStatus asserts the status code.
func ExpectStatus(resp *Response, expected int) {
	GinkgoHelper()
	Expect(resp).To(HaveStatus(expected))
}

// ExpectField asserts a field literal, e.g. ExpectField(resp, "user.email", email).
func ExpectField(resp *Response, path string, expected any) {
	GinkgoHelper()
	Expect(resp).To(HaveJSONField(path, expected))
}

// ExpectFieldNotEmpty asserts a field is present and, for strings and lists, non-empty.
func ExpectFieldNotEmpty(resp *Response, path string) {
	GinkgoHelper()

	value, ok := resp.Field(path)
	Expect(ok).To(BeTrue(), "Expected field %q to be present in %s", path, resp)

	switch value.(type) {
	case string, []any, map[string]any:
		Expect(value).NotTo(BeEmpty(), "Expected field %q to be non-empty in %s", path, resp)
	}
}

// ExpectFieldAbsent asserts a field is missing or null.
func ExpectFieldAbsent(resp *Response, path string) {
	GinkgoHelper()

	value, ok := resp.Field(path)
	Expect(ok).To(BeFalse(), "Expected field %q to be absent, got %v in %s", path, value, resp)
}

// ExpectSuccess asserts a 200 with success=true.
func ExpectSuccess(resp *Response) {
	GinkgoHelper()
	ExpectStatus(resp, 200)
	ExpectField(resp, "success", true)
}

// ExpectFailure asserts the status, success=false and the literal message.
func ExpectFailure(resp *Response, status int, message string) {
	GinkgoHelper()
	ExpectStatus(resp, status)
	ExpectField(resp, "success", false)
	ExpectField(resp, "message", message)
}

// ExpectNonEmptyList asserts the field at path is a list with at least one element.
func ExpectNonEmptyList(resp *Response, path string) {
	GinkgoHelper()

	value, ok := resp.Field(path)
	Expect(ok).To(BeTrue(), "Expected list %q to be present in %s", path, resp)
	Expect(value).To(BeAssignableToTypeOf([]any{}), "Expected %q to be a list in %s", path, resp)
	Expect(value).NotTo(BeEmpty(), "Expected list %q to be non-empty in %s", path, resp)
}

// ExpectContract asserts the response matches the API description.
func ExpectContract(resp *Response) {
	GinkgoHelper()
	Expect(ValidateContract(resp)).To(Succeed())
}
