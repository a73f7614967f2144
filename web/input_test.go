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

package web_test

import (
	"net/http"
	"net/url"

	"github.com/botobag/webgraphql/engine"
	"github.com/botobag/webgraphql/web"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("QueryInput", func() {
	var (
		uri     *url.URL
		headers http.Header
		body    map[string]interface{}
	)

	BeforeEach(func() {
		var err error
		uri, err = url.Parse("http://example.com/graphql?debug=1")
		Expect(err).ShouldNot(HaveOccurred())

		headers = http.Header{
			"Accept": []string{"application/json", "text/plain"},
		}

		body = map[string]interface{}{
			"query":         "query Q($id: ID) { node(id: $id) { id } }",
			"operationName": "Q",
			"variables": map[string]interface{}{
				"id": "1",
			},
			"extensions": map[string]interface{}{
				"tracing": true,
			},
		}
	})

	It("exposes URI, headers and body verbatim", func() {
		input := web.NewQueryInput(uri, headers, body)
		Expect(input.URI()).Should(Equal(uri))
		Expect(input.Headers()).Should(Equal(headers))
		Expect(input.Header("accept")).Should(Equal("application/json"))
		Expect(input.Body()).Should(Equal(body))
	})

	It("reads conventional GraphQL entries from body", func() {
		input := web.NewQueryInput(uri, headers, body)
		Expect(input.Query()).Should(Equal("query Q($id: ID) { node(id: $id) { id } }"))
		Expect(input.OperationName()).Should(Equal("Q"))
		Expect(input.Variables()).Should(Equal(map[string]interface{}{"id": "1"}))
		Expect(input.Extensions()).Should(Equal(map[string]interface{}{"tracing": true}))
		Expect(input.Request()).Should(Equal(&engine.Request{
			Query:         "query Q($id: ID) { node(id: $id) { id } }",
			OperationName: "Q",
			Variables:     map[string]interface{}{"id": "1"},
		}))
	})

	It("returns zero values for missing or mistyped entries", func() {
		input := web.NewQueryInput(nil, nil, map[string]interface{}{
			"query":     42,
			"variables": "not an object",
		})
		Expect(input.URI()).Should(BeNil())
		Expect(input.Headers()).Should(BeNil())
		Expect(input.Query()).Should(BeEmpty())
		Expect(input.OperationName()).Should(BeEmpty())
		Expect(input.Variables()).Should(BeNil())
		Expect(input.Extensions()).Should(BeNil())
	})

	It("is not affected by changes to the arguments or the returned values", func() {
		input := web.NewQueryInput(uri, headers, body)

		headers.Set("Accept", "text/html")
		body["query"] = "{ changed }"
		uri.Path = "/changed"

		input.Headers().Set("Accept", "text/html")
		input.Body()["operationName"] = "Changed"
		input.URI().Path = "/changed"

		Expect(input.Header("Accept")).Should(Equal("application/json"))
		Expect(input.Query()).Should(Equal("query Q($id: ID) { node(id: $id) { id } }"))
		Expect(input.OperationName()).Should(Equal("Q"))
		Expect(input.URI().Path).Should(Equal("/graphql"))
	})

	It("derives a new input with WithBody", func() {
		input := web.NewQueryInput(uri, headers, body)
		derived := input.WithBody("query", "{ hello }")
		Expect(derived.Query()).Should(Equal("{ hello }"))
		Expect(derived.OperationName()).Should(Equal("Q"))
		Expect(derived.Headers()).Should(Equal(headers))
		Expect(input.Query()).Should(Equal("query Q($id: ID) { node(id: $id) { id } }"))
	})
})

var _ = Describe("QueryOutput", func() {
	It("has no headers by default", func() {
		output := web.NewQueryOutput(engine.NewResult(nil), nil)
		Expect(output.Headers()).Should(BeNil())
	})

	It("derives a new output with WithHeader", func() {
		output := web.NewQueryOutput(engine.NewResult(nil), nil)
		derived := output.WithHeader("x-trace-id", "a", "b")
		Expect(derived.Headers()).Should(Equal(http.Header{
			"X-Trace-Id": []string{"a", "b"},
		}))
		Expect(output.Headers()).Should(BeNil())
		Expect(derived.Result()).Should(BeIdenticalTo(output.Result()))
	})

	It("serializes the engine result", func() {
		output := web.NewQueryOutput(engine.NewResult(map[string]interface{}{
			"hello": "world",
		}), nil)
		Expect(output.ToSpecification()).Should(Equal(map[string]interface{}{
			"data": map[string]interface{}{
				"hello": "world",
			},
		}))
	})

	It("treats a nil result as an empty result", func() {
		output := web.NewQueryOutput(nil, nil)
		Expect(output.ToSpecification()).Should(BeEmpty())
	})
})
