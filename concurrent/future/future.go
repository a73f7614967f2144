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

// A Future represents a value that may not have finished computing yet. The web handler receives
// one from the execution chain for every GraphQL query and registers a continuation on it instead
// of waiting for the engine inline.
//
// Futures are inert. They make progress only when polled, and a caller should poll again only
// after the Waker it handed to the last Poll has been woken. The model follows Rust's Future [0].
//
// [0]: https://doc.rust-lang.org/std/future/index.html
type Future interface {
	// Poll attempts to resolve the future to a final value. The returned pair means:
	//
	//	* ([any value], err): the future finished with an error;
	//	* (PollResultPending, nil): the value is not available yet, waker will be woken once the
	//	  future can make progress;
	//	* ([value other than PollResultPending], nil): the future finished with the value.
	//
	// Only the waker passed to the most recent Poll is guaranteed to be woken. A finished future
	// must not be polled again. Poll never blocks.
	Poll(waker Waker) (PollResult, error)
}
