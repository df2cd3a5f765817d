// Package blob moves bytes between Go and browser Blob and fetch APIs.
package blob

import (
	"errors"
	"fmt"
	"io"
	"syscall/js"
)

var (
	blobJS       = js.Global().Get("Blob")
	uint8ArrayJS = js.Global().Get("Uint8Array")

	errNotBlob  = errors.New("requires Blob object")
	errReadBlob = errors.New("failed to read Blob")
)

type Blob js.Value

func New(b []byte, typ string) Blob {
	array := uint8ArrayJS.New(len(b))
	js.CopyBytesToJS(array, b)

	return Blob(blobJS.New([]interface{}{array}, map[string]interface{}{
		"type": typ,
	}))
}

func FromJS(v js.Value) (Blob, error) {
	if !v.InstanceOf(blobJS) {
		return Blob{}, errNotBlob
	}
	return Blob(v), nil
}

func (b Blob) JS() js.Value {
	return js.Value(b)
}

// await blocks until the promise settles.
func await(promise js.Value) (js.Value, error) {
	var v js.Value
	chErr := make(chan error, 1)
	onOK := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		v = args[0]
		chErr <- nil
		return nil
	})
	onErr := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chErr <- fmt.Errorf("%s", args[0].Call("toString").String())
		return nil
	})
	defer onOK.Release()
	defer onErr.Release()

	promise.Call("then", onOK, onErr)
	if err := <-chErr; err != nil {
		return js.Null(), err
	}
	return v, nil
}

// Reader returns the content of the blob.
func (b Blob) Reader() (io.Reader, error) {
	buf, err := await(js.Value(b).Call("arrayBuffer"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errReadBlob, err)
	}
	array := uint8ArrayJS.New(buf)
	return &reader{
		array: array,
		n:     array.Get("byteLength").Int(),
	}, nil
}

type reader struct {
	array js.Value
	n     int
	pos   int
}

func (r *reader) Read(b []byte) (int, error) {
	if r.n == r.pos {
		return 0, io.EOF
	}
	end := r.pos + len(b)
	if end > r.n {
		end = r.n
	}
	sa := r.array.Call("subarray", r.pos, end)
	n := js.CopyBytesToGo(b, sa)
	r.pos += n
	return n, nil
}

// Fetch downloads url.
func Fetch(url string) ([]byte, error) {
	res, err := await(js.Global().Call("fetch", url, map[string]interface{}{
		"credentials": "include",
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if !res.Get("ok").Bool() {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, res.Get("statusText").String())
	}
	buf, err := await(res.Call("arrayBuffer"))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	array := uint8ArrayJS.New(buf)
	b := make([]byte, array.Get("byteLength").Int())
	js.CopyBytesToGo(b, array)
	return b, nil
}
