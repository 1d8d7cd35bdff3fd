// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Buffered writers are pooled; the encoder is cheap and rebuilt per stream.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
//   - toWire: converts one value to its stable wire type
//   - isBroken: recognizer for broken/closed pipe errors to suppress them
//
// The caller closes the returned channel and then reads exactly one error.
// After an error the goroutine keeps draining so senders never block.
func Start[T, W any](out io.Writer, bufSize int, toWire func(T) W, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		var err error
		for v := range in {
			if err != nil {
				continue
			}
			err = enc.Encode(toWire(v))
		}
		if err == nil {
			err = bw.Flush()
		}
		if err != nil && isBroken != nil && isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}

// WriteAll streams vs through Start and waits for the result.
func WriteAll[T, W any](out io.Writer, vs []T, toWire func(T) W, isBroken func(error) bool) error {
	in, done := Start(out, len(vs), toWire, isBroken)
	for _, v := range vs {
		in <- v
	}
	close(in)
	return <-done
}
