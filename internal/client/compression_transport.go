package client

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding is advertised on every upstream request that does not set its own.
const acceptEncoding = "gzip, br, zstd"

// bodyDecoder wraps a compressed body in a reader producing the decoded bytes.
type bodyDecoder func(body io.Reader) (io.ReadCloser, error)

var bodyDecoders = map[string]bodyDecoder{
	"gzip": func(body io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(body)
	},
	"br": func(body io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(body)), nil
	},
	"zstd": func(body io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport negotiates gzip, brotli and zstd with the upstream API
// and hands callers a decoded body
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &compressionTransport{next: next}
}

// RoundTrip sets Accept-Encoding when absent and decodes the response body
// according to its Content-Encoding. Unknown encodings are passed through untouched.
func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// HEAD, 204 and 304 responses carry nothing to decode
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	codings := contentCodings(resp.Header.Get("Content-Encoding"))
	body := &decodedBody{raw: resp.Body}
	var reader io.Reader = resp.Body
	// Codings are removed outermost first, stopping at the first unknown one.
	for len(codings) > 0 {
		decode, ok := bodyDecoders[codings[len(codings)-1]]
		if !ok {
			break
		}
		decoded, err := decode(reader)
		if err != nil {
			body.Close()
			return nil, err
		}
		body.decoders = append(body.decoders, decoded)
		reader = decoded
		codings = codings[:len(codings)-1]
	}
	if len(body.decoders) == 0 {
		return resp, nil
	}

	body.Reader = reader
	resp.Body = body
	if len(codings) > 0 {
		resp.Header.Set("Content-Encoding", strings.Join(codings, ", "))
	} else {
		resp.Header.Del("Content-Encoding")
	}
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// decodedBody reads through the decoder chain and closes every decoder and
// the raw network body.
type decodedBody struct {
	io.Reader
	decoders []io.ReadCloser
	raw      io.ReadCloser
}

func (b *decodedBody) Close() error {
	var firstErr error
	for i := len(b.decoders) - 1; i >= 0; i-- {
		if err := b.decoders[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := b.raw.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// contentCodings splits a Content-Encoding list in the order the codings were
// applied. Names are lowercased and identity entries are dropped.
func contentCodings(header string) []string {
	var codings []string
	for _, c := range strings.Split(header, ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || c == "identity" {
			continue
		}
		codings = append(codings, c)
	}
	return codings
}
