// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package baseenc provides the RFC 4648 binary-to-text encodings behind a
// single value type.
package baseenc

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/floppywaste/gutil/errdefs"
)

type codec interface {
	EncodeToString(src []byte) string
	DecodeString(s string) ([]byte, error)
}

type base16 struct{}

func (base16) EncodeToString(src []byte) string    { return strings.ToUpper(hex.EncodeToString(src)) }
func (base16) DecodeString(s string) ([]byte, error) { return hex.DecodeString(s) }

// An Encoding converts bytes to text and back. The zero value is not usable.
type Encoding struct {
	name    string
	codec   codec
	padding func() codec // nil when the encoding never pads
}

var (
	// Base64 is the standard base64 alphabet with padding.
	Base64 = Encoding{"base64", base64.StdEncoding, func() codec { return base64.RawStdEncoding }}
	// Base64URL is the URL and file name safe base64 alphabet with padding.
	Base64URL = Encoding{"base64url", base64.URLEncoding, func() codec { return base64.RawURLEncoding }}
	// Base32 is the standard base32 alphabet with padding.
	Base32 = Encoding{"base32", base32.StdEncoding, func() codec { return base32.StdEncoding.WithPadding(base32.NoPadding) }}
	// Base32Hex is the extended hex base32 alphabet with padding.
	Base32Hex = Encoding{"base32hex", base32.HexEncoding, func() codec { return base32.HexEncoding.WithPadding(base32.NoPadding) }}
	// Base16 is upper case hexadecimal. Decoding accepts either case.
	Base16 = Encoding{"base16", base16{}, nil}
)

func (e Encoding) String() string { return e.name }

// OmitPadding returns e without trailing padding characters, both when
// encoding and when decoding.
func (e Encoding) OmitPadding() Encoding {
	if e.padding == nil {
		return e
	}
	return Encoding{name: e.name + ".omitPadding", codec: e.padding()}
}

// Encode returns the encoding of b.
func (e Encoding) Encode(b []byte) string {
	return e.codec.EncodeToString(b)
}

// Decode returns the bytes represented by s. A padded encoding also accepts
// s with its padding left off, but padding that is present must be correct.
// Malformed input fails with [errdefs.ErrDecode].
func (e Encoding) Decode(s string) ([]byte, error) {
	b, err := e.codec.DecodeString(s)
	if err != nil && e.padding != nil && !strings.Contains(s, "=") {
		if raw, rerr := e.padding().DecodeString(s); rerr == nil {
			return raw, nil
		}
	}
	if err != nil {
		return nil, errors.Wrapf(errdefs.ErrDecode, "baseenc: %s: %v", e.name, err)
	}
	return b, nil
}
