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
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BodyReader reads the body of an HTTP request into a JSON object.
type BodyReader interface {
	// ReadBody returns the decoded body of r. It fails with *MediaTypeError if the content type
	// declared by r is not supported and with *InputError if the body cannot be read or decoded.
	ReadBody(r *http.Request) (map[string]interface{}, error)
}

// DefaultMaxBodySize is the default maximum number of bytes read from a request body.
const DefaultMaxBodySize = 10 << 20 // 10MB

// SupportedMediaTypes lists the media types accepted by JSONBodyReader. Any other "+json" suffixed
// "application" media type is accepted as well.
var SupportedMediaTypes = []string{
	"application/json",
	"application/graphql-response+json",
}

// JSONBodyReader implements BodyReader for JSON-encoded request bodies. A request without
// Content-Type is decoded as JSON.
type JSONBodyReader struct {
	// Maximum size in bytes to be read from the body; DefaultMaxBodySize is used when it is zero.
	MaxBodySize uint
}

var _ BodyReader = JSONBodyReader{}

func isSupportedMediaType(mediaType string) bool {
	for _, supported := range SupportedMediaTypes {
		if mediaType == supported {
			return true
		}
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}

// ReadBody implements BodyReader.
func (reader JSONBodyReader) ReadBody(r *http.Request) (map[string]interface{}, error) {
	if contentType := r.Header.Get("Content-Type"); len(contentType) > 0 {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || !isSupportedMediaType(mediaType) {
			return nil, &MediaTypeError{
				ContentType: contentType,
				Supported:   SupportedMediaTypes,
			}
		}
	}

	if r.Body == nil || r.Body == http.NoBody {
		return nil, &InputError{
			Reason: "request body is missing",
		}
	}

	maxBodySize := reader.MaxBodySize
	if maxBodySize == 0 {
		maxBodySize = DefaultMaxBodySize
	}

	data, err := ioutil.ReadAll(io.LimitReader(r.Body, int64(maxBodySize)+1))
	if err != nil {
		return nil, &InputError{
			Reason: "I/O error while reading request body",
			Err:    err,
		}
	}

	if uint(len(data)) > maxBodySize {
		return nil, &InputError{
			Reason: "request body is too large",
			Err:    errors.Errorf("body exceeds %d bytes", maxBodySize),
		}
	}

	if len(data) == 0 {
		return nil, &InputError{
			Reason: "request body is empty",
		}
	}

	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, &InputError{
			Reason: "request body is not a valid JSON object",
			Err:    err,
		}
	}

	// "null" decodes into a nil map without error.
	if body == nil {
		return nil, &InputError{
			Reason: "request body is not a valid JSON object",
		}
	}

	return body, nil
}
