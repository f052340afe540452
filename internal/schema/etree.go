package schema

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/ralt/eopkginfo/internal/models"
)

// etreeNode implements Node on top of an etree element
type etreeNode struct {
	el *etree.Element
}

func (n etreeNode) Tag() string {
	return n.el.FullTag()
}

func (n etreeNode) Path() string {
	return n.el.GetPath()
}

func (n etreeNode) Text() (string, bool) {
	text := n.el.Text()
	return text, text != ""
}

func (n etreeNode) Elements() []Node {
	children := n.el.ChildElements()
	nodes := make([]Node, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, etreeNode{el: c})
	}
	return nodes
}

func (n etreeNode) Attr(name string) (string, bool) {
	attr := n.el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// Parse decodes data as UTF-8 XML text and returns its root element
func Parse(data []byte) (Element, error) {
	if !utf8.Valid(data) {
		return Element{}, &models.EopkgError{
			Type: models.ErrDecode,
			Err:  errors.New("content is not valid UTF-8"),
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Element{}, &models.EopkgError{
			Type: models.ErrDecode,
			Err:  fmt.Errorf("malformed XML: %w", err),
		}
	}

	root, err := documentRoot(doc)
	if err != nil {
		return Element{}, &models.EopkgError{
			Type: models.ErrDecode,
			Err:  err,
		}
	}

	return Wrap(etreeNode{el: root}), nil
}

// documentRoot returns the single root element of doc. etree tolerates
// several top-level elements and text outside the root; neither is
// well-formed XML.
func documentRoot(doc *etree.Document) (*etree.Element, error) {
	var root *etree.Element
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, fmt.Errorf("malformed XML: more than one root element (<%s> after <%s>)", t.FullTag(), root.FullTag())
			}
			root = t
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, errors.New("malformed XML: text outside the root element")
			}
		}
	}
	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}
