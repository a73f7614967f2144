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

import (
	"sync"

	"github.com/pkg/errors"
)

// goFuture implements the Future returned by Go.
type goFuture struct {
	// Lock that guards all fields below
	mutex sync.Mutex

	done  bool
	value interface{}
	err   error

	// The waker given by the most recent Poll; It is woken (once) when the task completes.
	waker Waker
}

// Go runs fn on a new goroutine and returns a Future that finishes with the values returned from
// fn. A panic in fn is recovered and turned into the error of the future.
func Go(fn func() (interface{}, error)) Future {
	f := &goFuture{
		waker: NopWaker,
	}
	go f.run(fn)
	return f
}

func (f *goFuture) run(fn func() (interface{}, error)) {
	value, err := call(fn)

	f.mutex.Lock()
	f.done = true
	f.value = value
	f.err = err
	waker := f.waker
	f.waker = NopWaker
	f.mutex.Unlock()

	waker.Wake()
}

func call(fn func() (interface{}, error)) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("future: task panicked: %v", r)
		}
	}()
	return fn()
}

// Poll implements Future.
func (f *goFuture) Poll(waker Waker) (PollResult, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.done {
		return f.value, f.err
	}

	if waker == nil {
		waker = NopWaker
	}
	f.waker = waker
	return PollResultPending, nil
}
