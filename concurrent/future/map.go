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

package future

// ThenFunc receives the outcome of a future and computes the outcome of the continuation.
type ThenFunc func(value interface{}, err error) (interface{}, error)

// thenFuture implements the Future returned by Then.
type thenFuture struct {
	input Future
	fn    ThenFunc
}

// Poll implements Future.
func (f *thenFuture) Poll(waker Waker) (PollResult, error) {
	result, err := f.input.Poll(waker)
	if err == nil && result == PollResultPending {
		return PollResultPending, nil
	}
	return f.fn(result, err)
}

// Then registers fn as the continuation of f. Unlike Map, fn is called when f fails as well so it
// can observe or recover from the error.
func Then(f Future, fn ThenFunc) Future {
	return &thenFuture{
		input: f,
		fn:    fn,
	}
}

// MapFunc computes a new value from the value of a future.
type MapFunc func(value interface{}) (interface{}, error)

// mapFuture implements the Future returned by Map.
type mapFuture struct {
	input Future
	fn    MapFunc
}

// Poll implements Future.
func (f *mapFuture) Poll(waker Waker) (PollResult, error) {
	result, err := f.input.Poll(waker)
	if err != nil {
		return nil, err
	}

	if result == PollResultPending {
		return PollResultPending, nil
	}

	return f.fn(result)
}

// Map registers fn as the continuation of f. The returned Future finishes with the value returned
// from fn once f finishes successfully. If f fails, the error is passed through as is and fn is
// never called.
func Map(f Future, fn MapFunc) Future {
	return &mapFuture{
		input: f,
		fn:    fn,
	}
}
