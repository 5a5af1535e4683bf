// Package content turns Markdown into document body content.
//
// Markdown is rendered to HTML with blackfriday and the HTML is walked with
// the x/net/html tokenizer. Headings h1 to h6 map to the cascade styles of
// the same name; paragraphs, list items and code blocks are written in the
// body style; tables become [table.Table] values.
package content

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/folio/pkg/document"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/table"
)

// Bullet prefixes unordered list items.
const Bullet = "• "

// Block is one drawable unit of parsed content.
type Block struct {
	// Style is the cascade style name. Empty means the body style.
	Style string
	Text  string
	Table *table.Table
}

const extensions = blackfriday.CommonExtensions | blackfriday.HardLineBreak

// Parse converts Markdown source into blocks.
func Parse(src []byte) ([]Block, error) {
	out := blackfriday.Run(src, blackfriday.WithExtensions(extensions))
	return parseHTML(bytes.NewReader(out))
}

// Markdown parses src and returns content that draws it.
func Markdown(src []byte) (document.ContentFunc, error) {
	blocks, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Blocks(blocks), nil
}

// Blocks returns content that draws blocks in order. Drawing stops at the
// first failure, which the canvas records.
func Blocks(blocks []Block) document.ContentFunc {
	return func(cv *document.Canvas) {
		for _, b := range blocks {
			var err error
			switch {
			case b.Table != nil:
				err = cv.Table(b.Table)
			case b.Style == "":
				err = cv.Write(b.Text)
			default:
				err = cv.Text(b.Style, b.Text)
			}
			if err != nil {
				return
			}
		}
	}
}

type list struct {
	ordered bool
	n       int
}

type tableState struct {
	header  bool
	headers [][]string
	rows    [][]string
	row     []string
}

type parser struct {
	blocks []Block
	lists  []list
	tbl    *tableState

	capturing bool
	pre       bool
	depth     int
	style     string
	prefix    string
	text      strings.Builder
}

func parseHTML(r io.Reader) ([]Block, error) {
	p := &parser{}
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse markdown")
			}
			return p.blocks, nil
		case html.TextToken:
			if p.capturing {
				p.write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if err := p.start(atom.Lookup(name)); err != nil {
				return nil, err
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			p.end(atom.Lookup(name))
		}
	}
}

func (p *parser) start(a atom.Atom) error {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p.open(a.String(), "")
	case atom.P, atom.Blockquote:
		p.open("", "")
	case atom.Pre:
		p.open("", "")
		p.pre = true
	case atom.Ul, atom.Ol:
		p.lists = append(p.lists, list{ordered: a == atom.Ol})
	case atom.Li:
		p.open("", p.itemPrefix())
	case atom.Br:
		if p.capturing {
			p.text.WriteByte('\n')
		}
	case atom.Table:
		if p.tbl != nil {
			return errors.New(errors.ErrCodeInvalidFormat, "nested tables are not supported")
		}
		p.tbl = &tableState{}
	case atom.Thead:
		if p.tbl != nil {
			p.tbl.header = true
		}
	case atom.Tbody:
		if p.tbl != nil {
			p.tbl.header = false
		}
	case atom.Tr:
		if p.tbl != nil {
			p.tbl.row = nil
		}
	case atom.Td, atom.Th:
		p.open("", "")
	}
	return nil
}

func (p *parser) end(a atom.Atom) {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.P, atom.Pre, atom.Blockquote, atom.Li:
		p.close()
	case atom.Ul, atom.Ol:
		if len(p.lists) > 0 {
			p.lists = p.lists[:len(p.lists)-1]
		}
	case atom.Td, atom.Th:
		if p.tbl != nil {
			p.tbl.row = append(p.tbl.row, strings.TrimSpace(p.text.String()))
		}
		p.reset()
	case atom.Tr:
		if p.tbl == nil {
			return
		}
		if p.tbl.header {
			p.tbl.headers = append(p.tbl.headers, p.tbl.row)
		} else {
			p.tbl.rows = append(p.tbl.rows, p.tbl.row)
		}
		p.tbl.row = nil
	case atom.Table:
		if p.tbl == nil {
			return
		}
		t := table.New()
		_ = t.SetHeaderRows(p.tbl.headers)
		_ = t.SetBodyRows(p.tbl.rows)
		p.blocks = append(p.blocks, Block{Table: t})
		p.tbl = nil
	}
}

// open starts capturing a block. A block nested inside one being captured,
// like a paragraph in a loose list item, continues the outer block; a nested
// list item first flushes the text gathered so far.
func (p *parser) open(style, prefix string) {
	p.depth++
	if p.capturing {
		if prefix != "" {
			p.flush()
			p.prefix = prefix
		}
		return
	}
	p.capturing = true
	p.style = style
	p.prefix = prefix
	p.text.Reset()
}

func (p *parser) close() {
	if p.depth == 0 {
		return
	}
	p.flush()
	p.depth--
	if p.depth == 0 {
		p.reset()
	}
}

// write appends text. Outside code blocks source newlines are plain
// whitespace; explicit breaks come from <br>.
func (p *parser) write(text []byte) {
	if p.pre {
		p.text.Write(text)
		return
	}
	p.text.WriteString(strings.ReplaceAll(string(text), "\n", " "))
}

// flush emits the gathered text, if any, as a block.
func (p *parser) flush() {
	text := p.text.String()
	if !p.pre {
		lines := strings.Split(text, "\n")
		for i, l := range lines {
			lines[i] = strings.Join(strings.Fields(l), " ")
		}
		text = strings.Join(lines, "\n")
	}
	text = strings.TrimSpace(text)
	if text != "" {
		p.blocks = append(p.blocks, Block{Style: p.style, Text: p.prefix + text})
		p.prefix = ""
	}
	p.text.Reset()
}

func (p *parser) reset() {
	p.depth = 0
	p.capturing = false
	p.pre = false
	p.style = ""
	p.prefix = ""
	p.text.Reset()
}

func (p *parser) itemPrefix() string {
	if len(p.lists) == 0 {
		return Bullet
	}
	l := &p.lists[len(p.lists)-1]
	indent := strings.Repeat("  ", len(p.lists)-1)
	if !l.ordered {
		return indent + Bullet
	}
	l.n++
	return fmt.Sprintf("%s%d. ", indent, l.n)
}
