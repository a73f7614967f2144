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
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Schema is an Engine backed by github.com/graph-gophers/graphql-go.
type Schema struct {
	schema *graphql.Schema
}

var _ Engine = (*Schema)(nil)

// NewSchema parses the schema in SDL and binds it to resolver. opts are passed through to
// graphql.ParseSchema (e.g., graphql.UseFieldResolvers(), graphql.MaxDepth(n)).
func NewSchema(sdl string, resolver interface{}, opts ...graphql.SchemaOpt) (*Schema, error) {
	schema, err := graphql.ParseSchema(sdl, resolver, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "engine: cannot parse schema")
	}
	return &Schema{schema}, nil
}

// MustNewSchema is like NewSchema but panics if the schema cannot be parsed.
func MustNewSchema(sdl string, resolver interface{}, opts ...graphql.SchemaOpt) *Schema {
	schema, err := NewSchema(sdl, resolver, opts...)
	if err != nil {
		panic(err)
	}
	return schema
}

// Execute implements Engine.
func (s *Schema) Execute(ctx context.Context, req *Request) *Result {
	response := s.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	result := &Result{
		Errors:     convertErrors(response.Errors),
		Extensions: response.Extensions,
	}

	if len(response.Data) > 0 {
		result.DataPresent = true
		if err := json.Unmarshal(response.Data, &result.Data); err != nil {
			// The engine produced data that cannot be decoded. Keep "data" as null and report.
			result.Data = nil
			result.Errors = append(result.Errors, NewError("cannot decode result data: %s", err))
		}
	}

	return result
}

func convertErrors(errs []*gqlerrors.QueryError) []*Error {
	if len(errs) == 0 {
		return nil
	}

	result := make([]*Error, len(errs))
	for i, err := range errs {
		e := &Error{
			Message:    err.Message,
			Path:       err.Path,
			Extensions: err.Extensions,
		}
		if len(err.Locations) > 0 {
			e.Locations = make([]Location, len(err.Locations))
			for j, loc := range err.Locations {
				e.Locations[j] = Location{
					Line:   loc.Line,
					Column: loc.Column,
				}
			}
		}
		result[i] = e
	}
	return result
}
