// Package sourcemap builds standard source-map v3 documents mapping
// generated output positions back to original declaration sites.
package sourcemap

import (
	"sort"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Map is a source-map v3 document.
type Map struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"`
	Sources        []string  `json:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
}

// JSON encodes the map.
func (m *Map) JSON() ([]byte, error) {
	return gojson.Marshal(m)
}

type mapping struct {
	genLine int // 0-based
	genCol  int // 0-based
	src     int
	srcLine int // 0-based
	srcCol  int // 0-based
}

// Generator accumulates mappings and source registrations, then renders a
// Map. Positions are 0-based; callers converting from 1-based editor
// positions subtract one.
type Generator struct {
	sources    []string
	sourceIdx  map[string]int
	contents   map[string]string
	hasContent bool
	mappings   []mapping
}

// NewGenerator returns an empty Generator.
func NewGenerator() *Generator {
	return &Generator{sourceIdx: map[string]int{}, contents: map[string]string{}}
}

// AddSource registers source and returns its index. Registering the same
// source twice returns the first index.
func (g *Generator) AddSource(source string) int {
	if i, ok := g.sourceIdx[source]; ok {
		return i
	}
	i := len(g.sources)
	g.sources = append(g.sources, source)
	g.sourceIdx[source] = i
	return i
}

// SetSourceContent embeds the text of source. The source is registered if it
// was not already. Content set twice keeps the first value.
func (g *Generator) SetSourceContent(source, content string) {
	g.AddSource(source)
	if _, ok := g.contents[source]; ok {
		return
	}
	g.contents[source] = content
	g.hasContent = true
}

// AddMapping maps the generated position (genLine, genCol) to (srcLine,
// srcCol) in source.
func (g *Generator) AddMapping(genLine, genCol int, source string, srcLine, srcCol int) {
	g.mappings = append(g.mappings, mapping{
		genLine: genLine,
		genCol:  genCol,
		src:     g.AddSource(source),
		srcLine: srcLine,
		srcCol:  srcCol,
	})
}

// Empty reports whether no mappings were added.
func (g *Generator) Empty() bool { return len(g.mappings) == 0 }

// Map renders the accumulated state as a v3 document for the generated file.
func (g *Generator) Map(file string) *Map {
	m := &Map{
		Version:  3,
		File:     file,
		Sources:  append([]string(nil), g.sources...),
		Names:    []string{},
		Mappings: g.encodeMappings(),
	}
	if m.Sources == nil {
		m.Sources = []string{}
	}
	if g.hasContent {
		m.SourcesContent = make([]*string, len(g.sources))
		for i, s := range g.sources {
			if c, ok := g.contents[s]; ok {
				c := c
				m.SourcesContent[i] = &c
			}
		}
	}
	return m
}

func (g *Generator) encodeMappings() string {
	ms := append([]mapping(nil), g.mappings...)
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].genLine != ms[j].genLine {
			return ms[i].genLine < ms[j].genLine
		}
		return ms[i].genCol < ms[j].genCol
	})

	var b strings.Builder
	line := 0
	prevGenCol := 0
	prevSrc := 0
	prevSrcLine := 0
	prevSrcCol := 0
	first := true
	for _, m := range ms {
		for line < m.genLine {
			b.WriteByte(';')
			line++
			prevGenCol = 0
			first = true
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		encodeVLQ(&b, m.genCol-prevGenCol)
		encodeVLQ(&b, m.src-prevSrc)
		encodeVLQ(&b, m.srcLine-prevSrcLine)
		encodeVLQ(&b, m.srcCol-prevSrcCol)
		prevGenCol = m.genCol
		prevSrc = m.src
		prevSrcLine = m.srcLine
		prevSrcCol = m.srcCol
	}
	return b.String()
}

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// encodeVLQ writes v as a base64 VLQ: sign bit in the lowest bit, then 5-bit
// groups with a continuation bit.
func encodeVLQ(b *strings.Builder, v int) {
	u := uint(v) << 1
	if v < 0 {
		u = uint(-v)<<1 | 1
	}
	for {
		digit := u & 0x1f
		u >>= 5
		if u != 0 {
			digit |= 0x20
		}
		b.WriteByte(base64Chars[digit])
		if u == 0 {
			break
		}
	}
}
