// Package sniffer detects photo formats from magic bytes. Uploads are
// accepted by what the bytes say, never by the declared content type alone.
package sniffer

import (
	"bytes"
	"errors"
)

type PhotoType string

const (
	TypeJPEG PhotoType = "jpeg"
	TypePNG  PhotoType = "png"
	TypeGIF  PhotoType = "gif"
	TypeWEBP PhotoType = "webp"
)

var ErrUnsupportedType = errors.New("unsupported photo type")

type Result struct {
	Type PhotoType
	MIME string
	Ext  string
}

// Detect inspects the first bytes of a file and returns the photo format.
// Anything that is not a jpeg, png, gif or webp is rejected.
func Detect(head []byte) (Result, error) {
	switch {
	case bytes.HasPrefix(head, []byte{0xFF, 0xD8, 0xFF}):
		return Result{Type: TypeJPEG, MIME: "image/jpeg", Ext: "jpg"}, nil
	case bytes.HasPrefix(head, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return Result{Type: TypePNG, MIME: "image/png", Ext: "png"}, nil
	case bytes.HasPrefix(head, []byte("GIF87a")) || bytes.HasPrefix(head, []byte("GIF89a")):
		return Result{Type: TypeGIF, MIME: "image/gif", Ext: "gif"}, nil
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")):
		return Result{Type: TypeWEBP, MIME: "image/webp", Ext: "webp"}, nil
	}
	return Result{}, ErrUnsupportedType
}
