package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func buildPptx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const slideWithTitleAndBullets = `<sld><cSld><spTree>
<sp><nvSpPr><nvPr><ph type="title"/></nvPr></nvSpPr>
  <txBody><p><r><t>Quarterly Review</t></r></p></txBody></sp>
<sp><nvSpPr><nvPr/></nvSpPr>
  <txBody>
    <p><r><t>Revenue grew</t></r></p>
    <p><pPr lvl="1"/><r><t>EMEA detail</t></r></p>
    <p><pPr lvl="2"/><r><t>France numbers</t></r></p>
  </txBody></sp>
</spTree></cSld></sld>`

func TestDecodePresentationMarkersAndBullets(t *testing.T) {
	data := buildPptx(t, map[string]string{
		"ppt/slides/slide1.xml": slideWithTitleAndBullets,
	})
	e := New(&fakeOCR{}, &fakeCaptioner{}, &fakeTranscriber{}, t.TempDir())

	got, err := e.DecodePresentation(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"<<SLIDE 1 START>>",
		"Slide 1",
		"Title: Quarterly Review",
		"• Revenue grew",
		"    ◦ EMEA detail",
		"        ▪ France numbers",
		"<<SLIDE 1 END>>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "• Quarterly Review") {
		t.Errorf("title rendered again as a bullet:\n%s", got)
	}
}

func TestDecodePresentationSlideOrderAndSeparator(t *testing.T) {
	data := buildPptx(t, map[string]string{
		"ppt/slides/slide2.xml": `<sld><cSld><spTree><sp><nvSpPr><nvPr/></nvSpPr><txBody><p><r><t>second</t></r></p></txBody></sp></spTree></cSld></sld>`,
		"ppt/slides/slide1.xml": `<sld><cSld><spTree><sp><nvSpPr><nvPr/></nvSpPr><txBody><p><r><t>first</t></r></p></txBody></sp></spTree></cSld></sld>`,
	})
	e := New(&fakeOCR{}, &fakeCaptioner{}, &fakeTranscriber{}, t.TempDir())

	got, err := e.DecodePresentation(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocks := strings.Split(got, "\n\n===\n\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 slide blocks, got %d:\n%s", len(blocks), got)
	}
	if !strings.Contains(blocks[0], "first") || !strings.Contains(blocks[1], "second") {
		t.Fatalf("slides out of order:\n%s", got)
	}
}

func TestDecodePresentationTable(t *testing.T) {
	data := buildPptx(t, map[string]string{
		"ppt/slides/slide1.xml": `<sld><cSld><spTree>
<graphicFrame><graphic><graphicData><tbl>
  <tr><tc><txBody><p><r><t>Region</t></r></p></txBody></tc><tc><txBody><p><r><t>Sales</t></r></p></txBody></tc></tr>
  <tr><tc><txBody><p><r><t>EMEA</t></r></p></txBody></tc><tc><txBody><p><r><t>42</t></r></p></txBody></tc></tr>
</tbl></graphicData></graphic></graphicFrame>
</spTree></cSld></sld>`,
	})
	e := New(&fakeOCR{}, &fakeCaptioner{}, &fakeTranscriber{}, t.TempDir())

	got, err := e.DecodePresentation(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Table:", "Region | Sales", "EMEA | 42"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDecodePresentationNotes(t *testing.T) {
	data := buildPptx(t, map[string]string{
		"ppt/slides/slide1.xml": `<sld><cSld><spTree><sp><nvSpPr><nvPr/></nvSpPr><txBody><p><r><t>content</t></r></p></txBody></sp></spTree></cSld></sld>`,
		"ppt/notesSlides/notesSlide1.xml": `<notes><cSld><spTree>
<sp><nvSpPr><nvPr><ph type="sldNum"/></nvPr></nvSpPr><txBody><p><r><t>1</t></r></p></txBody></sp>
<sp><nvSpPr><nvPr><ph type="body"/></nvPr></nvSpPr><txBody><p><r><t>remember the demo</t></r></p></txBody></sp>
</spTree></cSld></notes>`,
	})
	e := New(&fakeOCR{}, &fakeCaptioner{}, &fakeTranscriber{}, t.TempDir())

	got, err := e.DecodePresentation(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Presenter notes:\nremember the demo") {
		t.Errorf("notes missing:\n%s", got)
	}
	if strings.Contains(got, "Presenter notes:\n1") {
		t.Errorf("slide-number placeholder leaked into notes:\n%s", got)
	}
}

func TestDecodePresentationEmpty(t *testing.T) {
	data := buildPptx(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
	})
	e := New(&fakeOCR{}, &fakeCaptioner{}, &fakeTranscriber{}, t.TempDir())

	got, err := e.DecodePresentation(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "No content found in presentation." {
		t.Fatalf("got %q", got)
	}
}

func TestDecodePresentationNotAZip(t *testing.T) {
	e := New(&fakeOCR{}, &fakeCaptioner{}, &fakeTranscriber{}, t.TempDir())

	_, err := e.DecodePresentation(context.Background(), []byte("not a zip archive"))
	if err == nil {
		t.Fatal("expected error for non-zip input")
	}
}
