package sourcemap_test

import (
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/typograph/sourcemap"
)

func TestEmptyGenerator(t *testing.T) {
	g := sourcemap.NewGenerator()
	if !g.Empty() {
		t.Fatalf("fresh generator not empty")
	}
	m := g.Map("out.txt")
	if m.Version != 3 || m.Mappings != "" || len(m.Sources) != 0 {
		t.Fatalf("empty map = %+v", m)
	}
}

func TestSingleMapping(t *testing.T) {
	g := sourcemap.NewGenerator()
	g.AddMapping(0, 0, "src.ts", 0, 0)
	m := g.Map("out.txt")
	if m.Mappings != "AAAA" {
		t.Fatalf("mappings = %q, want AAAA", m.Mappings)
	}
	if len(m.Sources) != 1 || m.Sources[0] != "src.ts" {
		t.Fatalf("sources = %v", m.Sources)
	}
}

func TestRelativeEncodingAcrossLines(t *testing.T) {
	g := sourcemap.NewGenerator()
	// line 0 col 0 -> src 0:0; line 0 col 4 -> src 0:8; line 2 col 0 -> src 1:0
	g.AddMapping(0, 0, "src.ts", 0, 0)
	g.AddMapping(0, 4, "src.ts", 0, 8)
	g.AddMapping(2, 0, "src.ts", 1, 0)
	m := g.Map("out.txt")
	// Segment 2 on line 0: genCol +4 => "I", src +0 => "A", line +0 => "A",
	// col +8 => "Q". Line 2 resets genCol: 0 => "A", src +0, line +1 => "C",
	// col -8 => "R".
	want := "AAAA,IAAQ;;AACR"
	if m.Mappings != want {
		t.Fatalf("mappings = %q, want %q", m.Mappings, want)
	}
}

func TestSourceRegisteredOnceWithContent(t *testing.T) {
	g := sourcemap.NewGenerator()
	g.SetSourceContent("a.ts", "interface A {}")
	g.SetSourceContent("a.ts", "ignored")
	g.AddMapping(0, 0, "a.ts", 0, 0)
	g.AddMapping(1, 0, "b.ts", 0, 0)

	m := g.Map("out.txt")
	if len(m.Sources) != 2 {
		t.Fatalf("sources = %v", m.Sources)
	}
	if m.SourcesContent == nil || m.SourcesContent[0] == nil || *m.SourcesContent[0] != "interface A {}" {
		t.Fatalf("content[0] = %v", m.SourcesContent)
	}
	// b.ts has no content registered.
	if m.SourcesContent[1] != nil {
		t.Fatalf("content[1] should be null")
	}
}

func TestJSONShape(t *testing.T) {
	g := sourcemap.NewGenerator()
	g.AddMapping(0, 0, "src.ts", 2, 4)
	data, err := g.Map("gen.out").JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := gojson.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["version"] != float64(3) {
		t.Fatalf("version = %v", decoded["version"])
	}
	if decoded["file"] != "gen.out" {
		t.Fatalf("file = %v", decoded["file"])
	}
	if _, ok := decoded["mappings"].(string); !ok {
		t.Fatalf("mappings missing")
	}
	// names is present even when empty, per the v3 shape.
	if _, ok := decoded["names"]; !ok {
		t.Fatalf("names missing: %s", data)
	}
}

func TestNegativeVLQDelta(t *testing.T) {
	g := sourcemap.NewGenerator()
	g.AddMapping(0, 8, "s", 0, 8)
	g.AddMapping(0, 10, "s", 0, 0) // source col delta -8
	m := g.Map("o")
	if !strings.Contains(m.Mappings, ",") {
		t.Fatalf("expected two segments: %q", m.Mappings)
	}
	// -8 encodes as "R" (sign bit set): just check round shape, the exact
	// string is covered above.
	parts := strings.Split(m.Mappings, ",")
	if len(parts) != 2 || len(parts[1]) != 4 {
		t.Fatalf("segments = %v", parts)
	}
}
