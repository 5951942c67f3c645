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
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

//go:embed openapi.yaml
var openapiSpec []byte

// contractDocument parses and validates the embedded API description once.
var contractDocument = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("loading API description: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating API description: %w", err)
	}

	return doc, nil
})

// ValidateContract checks the status code, content type and body of a
// response against the API description for its method and path.
func ValidateContract(resp *Response) error {
	doc, err := contractDocument()
	if err != nil {
		return err
	}

	pathItem := doc.Paths.Find(resp.Path)
	if pathItem == nil {
		return fmt.Errorf("%w: path %s is not described", ErrContract, resp.Path)
	}

	operation := pathItem.GetOperation(resp.Method)
	if operation == nil {
		return fmt.Errorf("%w: %s %s is not described", ErrContract, resp.Method, resp.Path)
	}

	req, err := http.NewRequestWithContext(context.Background(), resp.Method, resp.Path, nil)
	if err != nil {
		return fmt.Errorf("creating validation request: %w", err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request: req,
			Route: &routers.Route{
				Spec:      doc,
				Path:      resp.Path,
				PathItem:  pathItem,
				Method:    resp.Method,
				Operation: operation,
			},
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	input.SetBodyBytes(resp.Body)

	if err := openapi3filter.ValidateResponse(context.Background(), input); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrContract, resp, err)
	}

	return nil
}
