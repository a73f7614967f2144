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
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing/iotest"

	"github.com/botobag/webgraphql/concurrent/future"
	"github.com/botobag/webgraphql/engine"
	"github.com/botobag/webgraphql/internal/hello"
	"github.com/botobag/webgraphql/internal/testutil"
	"github.com/botobag/webgraphql/web"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func mustNewHandler(chain *web.ExecutionChain, err error) *web.Handler {
	Expect(err).ShouldNot(HaveOccurred())
	handler, err := web.NewHandler(chain, web.Logger(zap.NewNop()))
	Expect(err).ShouldNot(HaveOccurred())
	return handler
}

func serve(handler http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

var _ = Describe("Handler", func() {
	var e *countingEngine

	BeforeEach(func() {
		e = newCountingEngine(engine.NewResult(map[string]interface{}{
			"hello": "world",
		}))
	})

	It("requires an execution chain", func() {
		_, err := web.NewHandler(nil)
		Expect(err).Should(HaveOccurred())
	})

	Describe("Handle", func() {
		It("builds the input from the request", func() {
			var captured *web.QueryInput
			handler := mustNewHandler(web.NewExecutionChain(e, web.InterceptorFunc(
				func(ctx context.Context, input *web.QueryInput, next web.ExecuteFunc) future.Future {
					captured = input
					return next(ctx, input)
				})))

			r := newPostRequest("application/json", `{"query": "{ hello }", "variables": {"a": [1, "b"]}}`)
			r.Header.Add("X-Multi", "1")
			r.Header.Add("X-Multi", "2")

			f, err := handler.Handle(r)
			Expect(err).ShouldNot(HaveOccurred())
			_, err = future.BlockOn(f)
			Expect(err).ShouldNot(HaveOccurred())

			Expect(captured.URI()).Should(Equal(r.URL))
			Expect(captured.Headers()).Should(Equal(r.Header))
			Expect(captured.Body()).Should(Equal(map[string]interface{}{
				"query": "{ hello }",
				"variables": map[string]interface{}{
					"a": []interface{}{float64(1), "b"},
				},
			}))
		})

		It("responds 200 with the specification of the output", func() {
			handler := mustNewHandler(web.NewExecutionChain(e))

			f, err := handler.Handle(newPostRequest("application/json", `{"query": "{ hello }"}`))
			Expect(err).ShouldNot(HaveOccurred())

			value, err := future.BlockOn(f)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(value).Should(Equal(&web.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{},
				Body: map[string]interface{}{
					"data": map[string]interface{}{
						"hello": "world",
					},
				},
			}))
		})

		It("fails with InputError without invoking the chain when reading body fails", func() {
			handler := mustNewHandler(web.NewExecutionChain(e))

			r := httptest.NewRequest(http.MethodPost, "/graphql", iotest.ErrReader(errors.New("broken pipe")))
			f, err := handler.Handle(r)
			Expect(f).Should(BeNil())
			Expect(err).Should(BeAssignableToTypeOf(&web.InputError{}))
			Expect(e.Calls()).Should(Equal(0))
		})

		It("fails with MediaTypeError without invoking the chain", func() {
			handler := mustNewHandler(web.NewExecutionChain(e))

			_, err := handler.Handle(newPostRequest("text/plain", `{"query": "{ hello }"}`))
			Expect(err).Should(BeAssignableToTypeOf(&web.MediaTypeError{}))
			Expect(e.Calls()).Should(Equal(0))
		})

		It("delivers chain errors through the future", func() {
			testErr := errors.New("chain failed")
			handler := mustNewHandler(web.NewExecutionChain(e, web.InterceptorFunc(
				func(ctx context.Context, input *web.QueryInput, next web.ExecuteFunc) future.Future {
					return future.Err(testErr)
				})))

			f, err := handler.Handle(newPostRequest("application/json", `{"query": "{ hello }"}`))
			Expect(err).ShouldNot(HaveOccurred())
			_, err = future.BlockOn(f)
			Expect(err).Should(MatchError(testErr))
		})
	})

	Describe("ServeHTTP", func() {
		It("serves a query with only the content type header when the output declares none", func() {
			handler := mustNewHandler(web.NewExecutionChain(e))

			w := serve(handler, newPostRequest("application/json", `{"query": "{ hello }"}`))
			Expect(w.Code).Should(Equal(http.StatusOK))
			Expect(w.Body.String()).Should(MatchJSON(`{"data":{"hello":"world"}}`))
			Expect(w.Header()).Should(Equal(http.Header{
				"Content-Type": []string{"application/json"},
			}))
		})

		It("adds headers declared by the output", func() {
			handler := mustNewHandler(web.NewExecutionChain(e, web.InterceptorFunc(
				func(ctx context.Context, input *web.QueryInput, next web.ExecuteFunc) future.Future {
					return future.Map(next(ctx, input), func(value interface{}) (interface{}, error) {
						return value.(*web.QueryOutput).
							WithHeader("X-Request-Id", "42").
							WithHeader("Cache-Control", "no-store", "private"), nil
					})
				})))

			w := serve(handler, newPostRequest("", `{"query": "{ hello }"}`))
			Expect(w.Code).Should(Equal(http.StatusOK))
			Expect(w.Header().Get("X-Request-Id")).Should(Equal("42"))
			Expect(w.Header()["Cache-Control"]).Should(Equal([]string{"no-store", "private"}))
			Expect(w.Header().Get("Content-Type")).Should(Equal("application/json"))
		})

		It("serves queries against a real schema", func() {
			handler := mustNewHandler(web.NewExecutionChain(hello.NewEngine()))

			w := serve(handler, newPostRequest("application/json",
				`{"query": "query Greet($name: String) { hello(name: $name) }", "variables": {"name": "gopher"}}`))
			Expect(w.Code).Should(Equal(http.StatusOK))
			Expect(w.Body.String()).Should(MatchJSON(`{"data":{"hello":"gopher"}}`))
		})

		It("responds 200 with errors for invalid queries", func() {
			handler := mustNewHandler(web.NewExecutionChain(hello.NewEngine()))

			w := serve(handler, newPostRequest("application/json", `{"query": "{ nope }"}`))
			Expect(w.Code).Should(Equal(http.StatusOK))

			var body map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).Should(Succeed())
			Expect(body).ShouldNot(HaveKey("data"))
			Expect(body["errors"]).Should(HaveLen(1))
		})

		It("responds 400 to malformed body", func() {
			handler := mustNewHandler(web.NewExecutionChain(e))

			w := serve(handler, newPostRequest("application/json", `{"query": `))
			Expect(w.Code).Should(Equal(http.StatusBadRequest))
			Expect(e.Calls()).Should(Equal(0))
		})

		It("responds 415 to unsupported content type", func() {
			handler := mustNewHandler(web.NewExecutionChain(e))

			w := serve(handler, newPostRequest("application/xml", `<query/>`))
			Expect(w.Code).Should(Equal(http.StatusUnsupportedMediaType))
			Expect(w.Header().Get("Accept")).Should(Equal(strings.Join(web.SupportedMediaTypes, ", ")))
			Expect(e.Calls()).Should(Equal(0))
		})

		It("responds 500 when the chain fails", func() {
			handler := mustNewHandler(web.NewExecutionChain(e, web.InterceptorFunc(
				func(ctx context.Context, input *web.QueryInput, next web.ExecuteFunc) future.Future {
					return future.Err(errors.New("secret internal failure"))
				})))

			w := serve(handler, newPostRequest("application/json", `{"query": "{ hello }"}`))
			Expect(w.Code).Should(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).ShouldNot(ContainSubstring("secret"))
		})

		It("responds 500 when the response body cannot be encoded", func() {
			handler := mustNewHandler(web.NewExecutionChain(engine.Func(
				func(ctx context.Context, req *engine.Request) *engine.Result {
					return engine.NewResult(map[string]interface{}{
						"ch": make(chan int),
					})
				})))

			w := serve(handler, newPostRequest("application/json", `{"query": "{ ch }"}`))
			Expect(w.Code).Should(Equal(http.StatusInternalServerError))
		})

		It("uses the error presenter given in options", func() {
			var presented error
			presenter := errorPresenterFunc(func(w http.ResponseWriter, r *http.Request, err error) {
				presented = err
				w.WriteHeader(http.StatusTeapot)
			})

			handler, err := web.NewHandler(mustNewChain(e), web.OverrideErrorPresenter(presenter))
			Expect(err).ShouldNot(HaveOccurred())

			w := serve(handler, newPostRequest("text/csv", "a,b"))
			Expect(w.Code).Should(Equal(http.StatusTeapot))
			Expect(presented).Should(BeAssignableToTypeOf(&web.MediaTypeError{}))
		})

		It("uses the body reader given in options", func() {
			reader := bodyReaderFunc(func(r *http.Request) (map[string]interface{}, error) {
				return map[string]interface{}{"query": r.URL.Query().Get("query")}, nil
			})

			handler, err := web.NewHandler(mustNewChain(e), web.OverrideBodyReader(reader))
			Expect(err).ShouldNot(HaveOccurred())

			w := serve(handler, httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bhello%7D", nil))
			Expect(w.Code).Should(Equal(http.StatusOK))
			Expect(<-e.requests).Should(Equal(&engine.Request{Query: "{hello}"}))
		})

		It("applies MaxBodySize to the default body reader", func() {
			handler, err := web.NewHandler(mustNewChain(e), web.MaxBodySize(8))
			Expect(err).ShouldNot(HaveOccurred())

			w := serve(handler, newPostRequest("application/json", `{"query": "{ hello }"}`))
			Expect(w.Code).Should(Equal(http.StatusBadRequest))
		})

		It("matches the scenario of a hello world query", func() {
			handler := mustNewHandler(web.NewExecutionChain(e))

			w := serve(handler, newPostRequest("application/json", `{"query": "{ hello }"}`))
			Expect(w.Code).Should(Equal(http.StatusOK))

			var body map[string]interface{}
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).Should(Succeed())
			Expect(body).Should(testutil.SerializeToJSONAs(map[string]interface{}{
				"data": map[string]interface{}{
					"hello": "world",
				},
			}))
		})
	})
})

type errorPresenterFunc func(w http.ResponseWriter, r *http.Request, err error)

func (f errorPresenterFunc) Write(w http.ResponseWriter, r *http.Request, err error) {
	f(w, r, err)
}

type bodyReaderFunc func(r *http.Request) (map[string]interface{}, error)

func (f bodyReaderFunc) ReadBody(r *http.Request) (map[string]interface{}, error) {
	return f(r)
}

func mustNewChain(e engine.Engine, interceptors ...web.Interceptor) *web.ExecutionChain {
	chain, err := web.NewExecutionChain(e, interceptors...)
	Expect(err).ShouldNot(HaveOccurred())
	return chain
}
