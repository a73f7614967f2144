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
	"fmt"
	"strings"
)

// MediaTypeError is returned when the request declares a content type that the body reader cannot
// decode. It is a client error.
type MediaTypeError struct {
	// ContentType is the value of the Content-Type header of the request.
	ContentType string

	// Supported lists the media types accepted by the body reader.
	Supported []string
}

// Error implements Go's error interface.
func (err *MediaTypeError) Error() string {
	return fmt.Sprintf("content type %q is not supported (supported: %s)",
		err.ContentType, strings.Join(err.Supported, ", "))
}

// InputError is returned when the request body cannot be read or decoded into a JSON object.
type InputError struct {
	// Reason describes the failure.
	Reason string

	// Err is the underlying error if any.
	Err error
}

// Error implements Go's error interface.
func (err *InputError) Error() string {
	if err.Err == nil {
		return err.Reason
	}
	return err.Reason + ": " + err.Err.Error()
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (err *InputError) Unwrap() error {
	return err.Err
}
