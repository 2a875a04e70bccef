package pagedoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/slimline/geometry"
	"github.com/tsawler/slimline/model"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<PcGts xmlns="http://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15">
    <Page imageFilename="simple.png" imageWidth="200" imageHeight="200">
        <TextRegion>
            <Coords points="5,5 5,195 195,195 195,5"/>
            <TextLine>
                <Coords points="5,10 50,12 100,10 100,30 100,50 40,50 45,30 50,10 5,10"/>
                <Baseline points="5,10 8,10 15,10 20,22 25,30"/>
            </TextLine>
        </TextRegion>
    </Page>
</PcGts>`

func TestParseLinesAndMasks(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	lines := doc.Lines()
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}

	masks, err := doc.Masks()
	if err != nil {
		t.Fatalf("Masks returned error: %v", err)
	}
	// Only TextLine Coords count; the region outline is not a mask.
	if len(masks) != 1 {
		t.Fatalf("Expected 1 mask, got %d", len(masks))
	}

	pts, err := doc.MaskPoints(masks[0])
	if err != nil {
		t.Fatalf("MaskPoints returned error: %v", err)
	}
	if len(pts) != 9 {
		t.Errorf("Expected 9 mask points, got %d", len(pts))
	}

	baseline, err := doc.Baseline(lines[0])
	if err != nil {
		t.Fatalf("Baseline returned error: %v", err)
	}
	if len(baseline) != 5 {
		t.Errorf("Expected 5 baseline points, got %d", len(baseline))
	}
}

func TestReferenceHeights(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	lines := doc.Lines()
	h, err := doc.LineHeight(lines[0])
	if err != nil {
		t.Fatalf("LineHeight returned error: %v", err)
	}
	if h != 40 {
		t.Errorf("Expected line height 40, got %f", h)
	}

	masks, err := doc.Masks()
	if err != nil {
		t.Fatal(err)
	}
	mh, err := doc.MaskHeight(masks[0])
	if err != nil {
		t.Fatalf("MaskHeight returned error: %v", err)
	}
	if mh != 40 {
		t.Errorf("Expected mask height 40, got %f", mh)
	}
}

func TestWriteBack(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	lines := doc.Lines()
	if err := doc.SetBaseline(lines[0], geometry.Points{{X: 5, Y: 10}, {X: 25, Y: 30}}); err != nil {
		t.Fatal(err)
	}
	masks, err := doc.Masks()
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.SetMaskPoints(masks[0], geometry.Points{{X: 5, Y: 10}, {X: 100, Y: 10}, {X: 100, Y: 50}, {X: 5, Y: 10}}); err != nil {
		t.Fatal(err)
	}
	out, err := doc.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<Baseline points="5,10 25,30"/>`) {
		t.Error("Rewritten baseline missing from output")
	}
	if !strings.Contains(out, `<Coords points="5,10 100,10 100,50 5,10"/>`) {
		t.Error("Rewritten mask missing from output")
	}
	if !strings.Contains(out, `points="5,5 5,195 195,195 195,5"`) {
		t.Error("Region outline was modified")
	}
}

func TestSerializeUnmutatedRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	out, err := doc.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if out != sample {
		t.Errorf("Unmutated serialization differs from source:\n%s", out)
	}
}

func TestOpenMatchesParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simple.page.xml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	fromFile, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	fromBytes, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	a, err := fromFile.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	b, err := fromBytes.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("File and raw-content parsing serialize differently")
	}
}

func TestDetectNamespaceDatedVariant(t *testing.T) {
	dated := strings.Replace(sample, "pagecontent/2013-07-15", "pagecontent/2019-07-15", 1)
	doc, err := Parse([]byte(dated))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Lines(); len(got) != 0 {
		t.Fatalf("Expected no lines before detection, got %d", len(got))
	}
	if err := doc.DetectNamespace(); err != nil {
		t.Fatalf("DetectNamespace returned error: %v", err)
	}
	if !strings.HasSuffix(doc.Namespace(), "2019-07-15") {
		t.Errorf("Unexpected namespace after detection: %s", doc.Namespace())
	}
	if got := doc.Lines(); len(got) != 1 {
		t.Errorf("Expected 1 line after detection, got %d", len(got))
	}
}

func TestPrefixedNamespace(t *testing.T) {
	prefixed := `<pc:PcGts xmlns:pc="http://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15">
    <pc:Page imageFilename="p.png">
        <pc:TextRegion>
            <pc:TextLine>
                <pc:Coords points="0,0 10,0 10,10 0,10"/>
                <pc:Baseline points="0,8 10,8"/>
            </pc:TextLine>
        </pc:TextRegion>
    </pc:Page>
</pc:PcGts>`
	doc, err := Parse([]byte(prefixed))
	if err != nil {
		t.Fatal(err)
	}
	lines := doc.Lines()
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	masks, err := doc.Masks()
	if err != nil || len(masks) != 1 {
		t.Fatalf("Masks = %v, %v", masks, err)
	}
	name, err := doc.ImagePath()
	if err != nil || name != "p.png" {
		t.Errorf("ImagePath = %q, %v", name, err)
	}
}

func TestStructuralErrors(t *testing.T) {
	doc, err := Parse([]byte(`<PcGts xmlns="http://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15">
  <Page>
    <TextRegion>
      <TextLine>
        <Coords points="0,0 10,0 10,10"/>
      </TextLine>
      <TextLine>
        <Coords points="0,0 bogus 10,10"/>
        <Baseline points="0,0 10,0"/>
      </TextLine>
    </TextRegion>
  </Page>
</PcGts>`))
	if err != nil {
		t.Fatal(err)
	}
	lines := doc.Lines()
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if _, err := doc.Baseline(lines[0]); !errors.Is(err, model.ErrMissingAttribute) {
		t.Errorf("Expected ErrMissingAttribute for absent Baseline, got %v", err)
	}
	if _, err := doc.LineHeight(lines[1]); !errors.Is(err, geometry.ErrMalformed) {
		t.Errorf("Expected ErrMalformed for bogus Coords, got %v", err)
	}
	if _, err := doc.ImagePath(); !errors.Is(err, model.ErrMissingAttribute) {
		t.Errorf("Expected ErrMissingAttribute for absent imageFilename, got %v", err)
	}
}

func TestReloadDiscardsMutations(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	lines := doc.Lines()
	if err := doc.SetBaseline(lines[0], geometry.Points{{X: 0, Y: 0}, {X: 1, Y: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := doc.Reload(); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	out, err := doc.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if out != sample {
		t.Error("Reload did not restore the original content")
	}
}
