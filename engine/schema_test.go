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

package engine_test

import (
	"context"

	"github.com/botobag/webgraphql/engine"
	"github.com/botobag/webgraphql/internal/hello"
	"github.com/botobag/webgraphql/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Schema", func() {
	var schema *engine.Schema

	BeforeEach(func() {
		schema = hello.NewEngine()
	})

	It("rejects invalid schema definition", func() {
		_, err := engine.NewSchema(`type Query { hello: Unknown }`, hello.Resolver{})
		Expect(err).Should(MatchError(ContainSubstring("engine: cannot parse schema")))
	})

	It("executes a query", func() {
		result := schema.Execute(context.Background(), &engine.Request{
			Query: "{ hello }",
		})
		Expect(result.HasErrors()).Should(BeFalse())
		Expect(result.DataPresent).Should(BeTrue())
		Expect(result.Data).Should(Equal(map[string]interface{}{
			"hello": "world",
		}))
	})

	It("executes a query with variables and operation name", func() {
		result := schema.Execute(context.Background(), &engine.Request{
			Query: `
				query A { a: hello }
				query B($name: String) { b: hello(name: $name) }
			`,
			OperationName: "B",
			Variables: map[string]interface{}{
				"name": "gopher",
			},
		})
		Expect(result.ToSpecification()).Should(testutil.SerializeToJSONAs(map[string]interface{}{
			"data": map[string]interface{}{
				"b": "gopher",
			},
		}))
	})

	It("reports syntax error without data", func() {
		result := schema.Execute(context.Background(), &engine.Request{
			Query: "{ hello ",
		})
		Expect(result.DataPresent).Should(BeFalse())
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0]).Should(testutil.MatchEngineError(
			testutil.MessageContainSubstring("syntax error"),
		))

		spec := result.ToSpecification()
		Expect(spec).ShouldNot(HaveKey("data"))
		Expect(spec).Should(HaveKey("errors"))
	})

	It("reports validation error with locations", func() {
		result := schema.Execute(context.Background(), &engine.Request{
			Query: "{ unknownField }",
		})
		Expect(result.DataPresent).Should(BeFalse())
		Expect(result.Errors).Should(ConsistOf(testutil.MatchEngineError(
			testutil.MessageContainSubstring("unknownField"),
			testutil.LocationEqual(engine.Location{Line: 1, Column: 3}),
		)))
	})

	It("reports field error with path together with data", func() {
		result := schema.Execute(context.Background(), &engine.Request{
			Query: "{ hello broken }",
		})
		Expect(result.DataPresent).Should(BeTrue())
		Expect(result.Data).Should(Equal(map[string]interface{}{
			"hello":  "world",
			"broken": nil,
		}))
		Expect(result.Errors).Should(ConsistOf(testutil.MatchEngineError(
			testutil.MessageContainSubstring(hello.ErrBroken.Error()),
			testutil.PathEqual([]interface{}{"broken"}),
		)))
	})
})
