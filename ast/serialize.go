package ast

import (
	"strings"

	"github.com/reoring/typograph/sourcemap"
)

// SerializeOpt configures serialization.
type SerializeOpt struct {
	// FileName names the generated file in the source map.
	FileName string
	// SourceContent loads the text of an original source file so it can be
	// embedded in the map. Return false to skip embedding (stdlib files,
	// generated inputs). Nil disables embedding entirely.
	SourceContent func(file string) (string, bool)
}

// Serialized is the flat result of rendering a node tree.
type Serialized struct {
	Text      string
	SourceMap *sourcemap.Map
}

// Serialize concatenates the tree's text in order and threads node source
// positions into a source map. Each original source file is registered once,
// with its content when the loader provides it.
func Serialize(root *Node, opt SerializeOpt) Serialized {
	s := &serializer{gen: sourcemap.NewGenerator(), opt: opt, registered: map[string]bool{}}
	s.walk(root)
	return Serialized{Text: s.text.String(), SourceMap: s.gen.Map(opt.FileName)}
}

type serializer struct {
	text       strings.Builder
	line       int // 0-based position of the write cursor
	col        int
	gen        *sourcemap.Generator
	opt        SerializeOpt
	registered map[string]bool
}

func (s *serializer) walk(n *Node) {
	if pos, ok := n.Pos(); ok {
		s.register(pos.File)
		// Pos is 1-based; the map is 0-based.
		s.gen.AddMapping(s.line, s.col, pos.File, pos.Line-1, pos.Column-1)
	}
	s.write(n.text)
	for _, c := range n.children {
		s.walk(c)
	}
}

func (s *serializer) register(file string) {
	if s.registered[file] {
		return
	}
	s.registered[file] = true
	if s.opt.SourceContent == nil {
		return
	}
	if content, ok := s.opt.SourceContent(file); ok {
		s.gen.SetSourceContent(file, content)
	}
}

func (s *serializer) write(text string) {
	if text == "" {
		return
	}
	s.text.WriteString(text)
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			s.col += len(text)
			return
		}
		s.line++
		s.col = 0
		text = text[i+1:]
	}
}
