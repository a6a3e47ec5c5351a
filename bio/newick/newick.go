// Package newick parses standard Newick tree grammar:
// `(...)name:length,...;` syntax, with internal nodes that omit a name
// receiving generated names Node1, Node2, ... assigned in pre-order.
package newick

import (
	"strconv"
	"strings"

	"github.com/bioaodp/oligosig/internal/apperr"
)

// Node is one parsed tree node. Leaf nodes have no Children and Name set
// from the input; internal nodes without an explicit name get one of the
// generated NodeN names.
type Node struct {
	Name     string
	Length   float64
	Children []*Node
}

// Leaves returns every leaf name under n, in left-to-right order.
func (n *Node) Leaves() []string {
	if len(n.Children) == 0 {
		return []string{n.Name}
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Parse parses a single Newick tree from text.
func Parse(text string) (*Node, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	p := &parser{text: text, counter: new(int)}
	root, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.text) {
		return nil, apperr.Newf(apperr.InvalidInput, "newick: unexpected trailing input at offset %d", p.pos)
	}
	var name func(n *Node)
	name = func(n *Node) {
		if n.Name == "" && len(n.Children) > 0 {
			*p.counter++
			n.Name = "Node" + strconv.Itoa(*p.counter)
		}
		for _, c := range n.Children {
			name(c)
		}
	}
	name(root)
	return root, nil
}

type parser struct {
	text    string
	pos     int
	counter *int
}

func (p *parser) parseNode() (*Node, error) {
	n := &Node{}
	if p.pos < len(p.text) && p.text[p.pos] == '(' {
		p.pos++
		for {
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
			if p.pos >= len(p.text) {
				return nil, apperr.New(apperr.InvalidInput, "newick: unterminated subtree")
			}
			if p.text[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.text[p.pos] == ')' {
				p.pos++
				break
			}
			return nil, apperr.Newf(apperr.InvalidInput, "newick: expected ',' or ')' at offset %d", p.pos)
		}
	}

	n.Name = p.parseLabel()

	if p.pos < len(p.text) && p.text[p.pos] == ':' {
		p.pos++
		start := p.pos
		for p.pos < len(p.text) && isLengthChar(p.text[p.pos]) {
			p.pos++
		}
		length, err := strconv.ParseFloat(p.text[start:p.pos], 64)
		if err != nil {
			return nil, apperr.Newf(apperr.InvalidInput, "newick: invalid branch length at offset %d", start)
		}
		n.Length = length
	}
	return n, nil
}

func (p *parser) parseLabel() string {
	start := p.pos
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case ',', ')', ':', '(':
			return p.text[start:p.pos]
		}
		p.pos++
	}
	return p.text[start:p.pos]
}

func isLengthChar(c byte) bool {
	return c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' || (c >= '0' && c <= '9')
}
