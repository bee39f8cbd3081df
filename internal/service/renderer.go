package service

import (
	"errors"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DocumentRenderer turns a fetched document into a raster image.
type DocumentRenderer interface {
	FirstPage(document []byte) (image.Image, error)
}

type fitzRenderer struct{}

// NewFitzRenderer renders PDFs through MuPDF.
func NewFitzRenderer() DocumentRenderer {
	return fitzRenderer{}
}

func (fitzRenderer) FirstPage(document []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(document)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, errors.New("document has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, err
	}
	return img, nil
}
