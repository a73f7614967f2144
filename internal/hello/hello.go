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

// Package hello provides a small schema for the webgraphql command and for tests.
package hello

import (
	"github.com/botobag/webgraphql/engine"

	"github.com/pkg/errors"
)

// SDL of the hello schema.
const SDL = `
schema {
	query: Query
}

type Query {
	hello(name: String): String!
	broken: String
}
`

// ErrBroken is returned by the resolver of Query.broken.
var ErrBroken = errors.New("this field is always broken")

// Resolver resolves the root Query type.
type Resolver struct{}

// Hello resolves Query.hello.
func (Resolver) Hello(args struct{ Name *string }) string {
	if args.Name == nil {
		return "world"
	}
	return *args.Name
}

// Broken resolves Query.broken.
func (Resolver) Broken() (*string, error) {
	return nil, ErrBroken
}

// NewEngine creates an engine that serves the hello schema.
func NewEngine() *engine.Schema {
	return engine.MustNewSchema(SDL, Resolver{})
}
