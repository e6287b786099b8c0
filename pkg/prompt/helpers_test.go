package prompt_test

import "io"

// newBlockingReader returns a reader that never yields data until the writer is closed.
func newBlockingReader() (io.Reader, io.Closer) {
	r, w := io.Pipe()
	return r, w
}
