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

package web

import (
	"net/http"

	"github.com/pkg/errors"
)

// Response is the HTTP response built from a QueryOutput.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       map[string]interface{}
}

// newResponse builds a 200 response from output. Headers declared by output replace the values of
// the same name in the response.
func newResponse(output *QueryOutput) *Response {
	resp := &Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       output.ToSpecification(),
	}

	if headers := output.Headers(); len(headers) > 0 {
		for name, values := range headers {
			resp.Header[name] = values
		}
	}

	return resp
}

// MarshalBody encodes the body into JSON.
func (resp *Response) MarshalBody() ([]byte, error) {
	data, err := json.Marshal(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "web: cannot encode response body")
	}
	return data, nil
}

// WriteTo sends resp to w. The body is encoded before anything is written so w is untouched when
// encoding fails.
func (resp *Response) WriteTo(w http.ResponseWriter) error {
	data, err := resp.MarshalBody()
	if err != nil {
		return err
	}
	return resp.write(w, data)
}

func (resp *Response) write(w http.ResponseWriter, body []byte) error {
	header := w.Header()
	for name, values := range resp.Header {
		header[name] = append([]string(nil), values...)
	}
	if len(header.Get("Content-Type")) == 0 {
		header.Set("Content-Type", "application/json")
	}

	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(body); err != nil {
		return errors.Wrap(err, "web: cannot write response body")
	}
	return nil
}
