package dialect

import (
	"os"
	"path/filepath"
	"testing"
)

const pageSample = `<?xml version="1.0" encoding="UTF-8"?>
<PcGts xmlns="http://schema.primaresearch.org/PAGE/gts/pagecontent/2013-07-15">
</PcGts>`

const altoSample = `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v4#">
</alto>`

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		data string
		want Dialect
	}{
		{"page", pageSample, PageXML},
		{"alto", altoSample, Alto},
		{"page prefixed", `<pc:PcGts xmlns:pc="http://schema.primaresearch.org/PAGE/gts/pagecontent/2019-07-15"/>`, PageXML},
		{"alto by namespace", `<root xmlns="http://www.loc.gov/standards/alto/ns-v2#"/>`, Alto},
		{"unknown", `<html><body/></html>`, Unknown},
		{"empty", ``, Unknown},
	}
	for _, c := range cases {
		if got := Detect([]byte(c.data)); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.xml")
	if err := os.WriteFile(path, []byte(pageSample), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := DetectFile(path)
	if err != nil {
		t.Fatalf("DetectFile returned error: %v", err)
	}
	if got != PageXML {
		t.Errorf("Expected PageXML, got %v", got)
	}

	if _, err := DetectFile(filepath.Join(dir, "missing.xml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParse(t *testing.T) {
	if d, err := Parse("alto"); err != nil || d != Alto {
		t.Errorf("Parse(alto) = %v, %v", d, err)
	}
	if d, err := Parse("Page"); err != nil || d != PageXML {
		t.Errorf("Parse(Page) = %v, %v", d, err)
	}
	if _, err := Parse("tei"); err == nil {
		t.Error("Expected error for unknown dialect")
	}
}

func TestString(t *testing.T) {
	if Alto.String() != "ALTO" || PageXML.String() != "PAGE-XML" || Unknown.String() != "Unknown" {
		t.Error("Unexpected dialect string representations")
	}
}
