package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	ltpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DecodePDF emits each page's plain text followed by the analysis of every
// image embedded on that page, labeled with page and image index, strictly in
// document order.
func (e *Extractor) DecodePDF(ctx context.Context, data []byte) (text string, err error) {
	// The underlying parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = decodeErr("pdf", fmt.Errorf("malformed document: %v", r))
		}
	}()

	reader, err := ltpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", decodeErr("pdf", err)
	}

	pageImages, err := extractPageImages(data)
	if err != nil {
		return "", decodeErr("pdf", err)
	}

	var blocks []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", decodeErr("pdf", err)
		}
		blocks = append(blocks, fmt.Sprintf("Page %d - Text:\n%s", pageNum, strings.TrimSpace(pageText)))

		for imgNum, imageData := range pageImages[pageNum] {
			analysis, err := e.DecodeImage(ctx, imageData, fmt.Sprintf("page%d-image%d", pageNum, imgNum+1))
			if err != nil {
				return "", err
			}
			blocks = append(blocks, fmt.Sprintf("Page %d - Image %d:\n%s", pageNum, imgNum+1, analysis))
		}
	}

	return strings.Join(blocks, "\n\n"), nil
}

// extractPageImages pulls the embedded raster images out of the document,
// grouped by page and ordered by object number within each page. Image
// XObjects in formats the captioning model cannot consume are skipped.
func extractPageImages(data []byte) (map[int][][]byte, error) {
	raw, err := api.ExtractImagesRaw(bytes.NewReader(data), nil, model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}

	type pageImage struct {
		objNr int
		data  []byte
	}
	byPage := make(map[int][]pageImage)
	for _, pageMap := range raw {
		for objNr, img := range pageMap {
			if !supportedImageType(img.FileType) {
				continue
			}
			imageData, err := io.ReadAll(img)
			if err != nil {
				return nil, err
			}
			byPage[img.PageNr] = append(byPage[img.PageNr], pageImage{objNr: objNr, data: imageData})
		}
	}

	out := make(map[int][][]byte, len(byPage))
	for pageNr, images := range byPage {
		sort.Slice(images, func(i, j int) bool { return images[i].objNr < images[j].objNr })
		for _, img := range images {
			out[pageNr] = append(out[pageNr], img.data)
		}
	}
	return out, nil
}

func supportedImageType(fileType string) bool {
	switch strings.ToLower(fileType) {
	case "jpg", "jpeg", "png", "webp":
		return true
	default:
		return false
	}
}
