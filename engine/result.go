/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package engine

import (
	"fmt"
)

// Location identifies a position in the GraphQL document. Line and Column are 1-based.
type Location struct {
	Line   int
	Column int
}

// Error is an error reported in the "errors" entry of a GraphQL response.
type Error struct {
	Message    string
	Locations  []Location
	Path       []interface{}
	Extensions map[string]interface{}
}

// NewError creates an Error with a formatted message.
func NewError(format string, a ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, a...),
	}
}

// Error implements Go's error interface.
func (err *Error) Error() string {
	if len(err.Locations) == 0 {
		return "graphql: " + err.Message
	}
	loc := err.Locations[0]
	return fmt.Sprintf("graphql: %s (line %d, column %d)", err.Message, loc.Line, loc.Column)
}

// toSpecification returns the serialized form of the error [0].
//
// [0]: https://spec.graphql.org/October2021/#sec-Errors
func (err *Error) toSpecification() map[string]interface{} {
	spec := map[string]interface{}{
		"message": err.Message,
	}

	if len(err.Locations) > 0 {
		locations := make([]interface{}, len(err.Locations))
		for i, loc := range err.Locations {
			locations[i] = map[string]interface{}{
				"line":   loc.Line,
				"column": loc.Column,
			}
		}
		spec["locations"] = locations
	}

	if len(err.Path) > 0 {
		spec["path"] = err.Path
	}

	if len(err.Extensions) > 0 {
		spec["extensions"] = err.Extensions
	}

	return spec
}

// Result is the outcome of executing a Request.
type Result struct {
	// Data is the result of the execution. It is meaningful only when DataPresent is true; a nil Data
	// with DataPresent serializes to "data": null.
	Data        interface{}
	DataPresent bool

	Errors     []*Error
	Extensions map[string]interface{}
}

// NewResult creates a Result that carries data.
func NewResult(data interface{}) *Result {
	return &Result{
		Data:        data,
		DataPresent: true,
	}
}

// ErrorResult creates a Result without data that carries the given errors. It is used when the
// request cannot be executed at all (e.g., a syntax error).
func ErrorResult(errs ...*Error) *Result {
	return &Result{
		Errors: errs,
	}
}

// HasErrors returns true if the result contains at least one error.
func (result *Result) HasErrors() bool {
	return len(result.Errors) > 0
}

// ToSpecification returns the result as the map defined by the GraphQL specification [0]. "data" is
// present only when the execution started, "errors" and "extensions" only when they're non-empty.
//
// [0]: https://spec.graphql.org/October2021/#sec-Response-Format
func (result *Result) ToSpecification() map[string]interface{} {
	spec := map[string]interface{}{}

	if result.DataPresent {
		spec["data"] = result.Data
	}

	if len(result.Errors) > 0 {
		errs := make([]interface{}, len(result.Errors))
		for i, err := range result.Errors {
			errs[i] = err.toSpecification()
		}
		spec["errors"] = errs
	}

	if len(result.Extensions) > 0 {
		spec["extensions"] = result.Extensions
	}

	return spec
}
