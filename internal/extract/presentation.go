package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// pptx is a zip of flat XML parts; these structs pull out just the pieces the
// text rendering needs. encoding/xml matches on local names, which is enough
// to cross the drawingml/presentationml namespaces.
type slideXML struct {
	CSld struct {
		SpTree spTreeXML `xml:"spTree"`
	} `xml:"cSld"`
}

type spTreeXML struct {
	Shapes   []shapeXML   `xml:"sp"`
	Frames   []frameXML   `xml:"graphicFrame"`
	Pictures []pictureXML `xml:"pic"`
}

type shapeXML struct {
	NvSpPr struct {
		NvPr struct {
			Ph *struct {
				Type string `xml:"type,attr"`
			} `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type txBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	PPr *struct {
		Lvl int `xml:"lvl,attr"`
	} `xml:"pPr"`
	Runs []struct {
		Text string `xml:"t"`
	} `xml:"r"`
}

type frameXML struct {
	Graphic struct {
		GraphicData struct {
			Tbl *tableXML `xml:"tbl"`
		} `xml:"graphicData"`
	} `xml:"graphic"`
}

type tableXML struct {
	Rows []struct {
		Cells []struct {
			TxBody txBodyXML `xml:"txBody"`
		} `xml:"tc"`
	} `xml:"tr"`
}

type pictureXML struct {
	BlipFill struct {
		Blip struct {
			Embed string `xml:"embed,attr"`
		} `xml:"blip"`
	} `xml:"blipFill"`
}

type relationshipsXML struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// DecodePresentation renders each slide as a marked block: start marker,
// title, leveled bullet lines, tables as pipe-joined rows, embedded pictures
// routed through the image decoder, presenter notes, end marker. A picture
// that fails to decode becomes an inline warning line instead of aborting the
// slide.
func (e *Extractor) DecodePresentation(ctx context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", decodeErr("presentation", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	var slideNums []int
	for _, f := range zr.File {
		parts[f.Name] = f
		if m := slideNameRe.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			slideNums = append(slideNums, n)
		}
	}
	sort.Ints(slideNums)

	var blocks []string
	for _, n := range slideNums {
		block, err := e.renderSlide(ctx, parts, n)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		return "No content found in presentation.", nil
	}
	return strings.Join(blocks, "\n\n===\n\n"), nil
}

func (e *Extractor) renderSlide(ctx context.Context, parts map[string]*zip.File, n int) (string, error) {
	var slide slideXML
	if err := unmarshalPart(parts, fmt.Sprintf("ppt/slides/slide%d.xml", n), &slide); err != nil {
		return "", decodeErr("presentation", err)
	}

	lines := []string{
		fmt.Sprintf("<<SLIDE %d START>>", n),
		fmt.Sprintf("Slide %d", n),
	}

	tree := slide.CSld.SpTree

	// Title
	if title := slideTitle(tree); title != "" {
		lines = append(lines, "Title: "+title)
	}

	// Text frames with leveled bullets (title shape excluded, it is already out)
	for _, sp := range tree.Shapes {
		if sp.TxBody == nil || isTitleShape(sp) {
			continue
		}
		for _, p := range sp.TxBody.Paragraphs {
			text := strings.TrimSpace(paragraphText(p))
			if text == "" {
				continue
			}
			lines = append(lines, bulletGlyph(paragraphLevel(p))+text)
		}
	}

	// Tables
	for _, frame := range tree.Frames {
		tbl := frame.Graphic.GraphicData.Tbl
		if tbl == nil {
			continue
		}
		lines = append(lines, "Table:")
		for _, row := range tbl.Rows {
			cells := make([]string, len(row.Cells))
			for i, cell := range row.Cells {
				cells[i] = strings.TrimSpace(bodyText(cell.TxBody))
			}
			lines = append(lines, strings.Join(cells, " | "))
		}
	}

	// Embedded pictures: route through the image decoder, warn inline on failure
	rels := slideRelationships(parts, n)
	for _, pic := range tree.Pictures {
		target, ok := rels[pic.BlipFill.Blip.Embed]
		if !ok {
			continue
		}
		imageData, err := readPart(parts, target)
		if err != nil {
			lines = append(lines, fmt.Sprintf("Warning: image extraction failed: %v", err))
			continue
		}
		analysis, err := e.DecodeImage(ctx, imageData, path.Base(target))
		if err != nil {
			lines = append(lines, fmt.Sprintf("Warning: image extraction failed: %v", err))
			continue
		}
		lines = append(lines, analysis)
	}

	// Presenter notes
	if notes := slideNotes(parts, n); notes != "" {
		lines = append(lines, "Presenter notes:", notes)
	}

	lines = append(lines, fmt.Sprintf("<<SLIDE %d END>>", n))
	return strings.Join(lines, "\n"), nil
}

func slideTitle(tree spTreeXML) string {
	for _, sp := range tree.Shapes {
		if isTitleShape(sp) && sp.TxBody != nil {
			return strings.TrimSpace(bodyText(*sp.TxBody))
		}
	}
	return ""
}

func isTitleShape(sp shapeXML) bool {
	ph := sp.NvSpPr.NvPr.Ph
	return ph != nil && (ph.Type == "title" || ph.Type == "ctrTitle")
}

func paragraphText(p paragraphXML) string {
	var sb strings.Builder
	for _, run := range p.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

func paragraphLevel(p paragraphXML) int {
	if p.PPr == nil {
		return 0
	}
	return p.PPr.Lvl
}

func bulletGlyph(level int) string {
	switch level {
	case 0:
		return "• "
	case 1:
		return "    ◦ "
	case 2:
		return "        ▪ "
	default:
		return ""
	}
}

func bodyText(body txBodyXML) string {
	parts := make([]string, 0, len(body.Paragraphs))
	for _, p := range body.Paragraphs {
		if text := strings.TrimSpace(paragraphText(p)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// slideRelationships maps relationship ids to normalized part names, e.g.
// "rId3" -> "ppt/media/image1.png".
func slideRelationships(parts map[string]*zip.File, n int) map[string]string {
	var rels relationshipsXML
	name := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)
	if err := unmarshalPart(parts, name, &rels); err != nil {
		return nil
	}
	out := make(map[string]string, len(rels.Rels))
	for _, rel := range rels.Rels {
		out[rel.ID] = path.Clean(path.Join("ppt/slides", rel.Target))
	}
	return out
}

func slideNotes(parts map[string]*zip.File, n int) string {
	var notes slideXML
	name := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n)
	if err := unmarshalPart(parts, name, &notes); err != nil {
		return ""
	}
	var sb strings.Builder
	for _, sp := range notes.CSld.SpTree.Shapes {
		// Skip the slide-number and image placeholders of the notes layout
		ph := sp.NvSpPr.NvPr.Ph
		if ph != nil && ph.Type != "body" {
			continue
		}
		if sp.TxBody == nil {
			continue
		}
		if text := strings.TrimSpace(bodyText(*sp.TxBody)); text != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(text)
		}
	}
	return sb.String()
}

func readPart(parts map[string]*zip.File, name string) ([]byte, error) {
	f, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("missing archive part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func unmarshalPart(parts map[string]*zip.File, name string, v interface{}) error {
	data, err := readPart(parts, name)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}
