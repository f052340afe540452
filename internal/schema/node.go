// Package schema maps XML element trees onto typed values with
// presence and type checking.
package schema

import (
	"strconv"
	"time"

	"github.com/ralt/eopkginfo/internal/models"
)

// DateLayout is the calendar date format used by eopkg History entries
const DateLayout = "2006-01-02"

// Node is a read-only cursor over an element of a parsed document.
// Implementations only ever return element children from Elements.
type Node interface {
	// Tag returns the element name
	Tag() string

	// Path returns the absolute path of the element, e.g. /PISI/Package
	Path() string

	// Text returns the character data directly inside the element
	Text() (string, bool)

	// Elements returns the element children in document order
	Elements() []Node

	// Attr returns the value of the named attribute
	Attr(name string) (string, bool)
}

// Element wraps a Node with the field lookups used by the mappers.
// When several children share a tag only the first one is used.
type Element struct {
	Node
}

// Wrap returns n as an Element
func Wrap(n Node) Element {
	return Element{Node: n}
}

func (e Element) child(tag string) (Node, bool) {
	for _, c := range e.Elements() {
		if c.Tag() == tag {
			return c, true
		}
	}
	return nil, false
}

func (e Element) missingField(tag string) error {
	return &models.EopkgError{
		Type:  models.ErrMissingField,
		Path:  e.Path(),
		Field: tag,
	}
}

func (e Element) invalidValue(field, raw string, err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		err = numErr.Err
	}
	return &models.EopkgError{
		Type:  models.ErrInvalidValue,
		Path:  e.Path(),
		Field: field,
		Value: raw,
		Err:   err,
	}
}

// RequiredChild returns the first child element named tag
func (e Element) RequiredChild(tag string) (Element, error) {
	c, ok := e.child(tag)
	if !ok {
		return Element{}, e.missingField(tag)
	}
	return Wrap(c), nil
}

// RequiredChildText returns the text of the first child element named
// tag. A child without text counts as missing.
func (e Element) RequiredChildText(tag string) (string, error) {
	c, ok := e.child(tag)
	if !ok {
		return "", e.missingField(tag)
	}
	text, ok := c.Text()
	if !ok {
		return "", e.missingField(tag)
	}
	return text, nil
}

// OptionalChildText is RequiredChildText for fields that may be absent
func (e Element) OptionalChildText(tag string) (string, bool) {
	text, err := e.RequiredChildText(tag)
	if err != nil {
		return "", false
	}
	return text, true
}

// AllChildren returns every child element named tag in document order.
// No match is not an error.
func (e Element) AllChildren(tag string) []Element {
	var out []Element
	for _, c := range e.Elements() {
		if c.Tag() == tag {
			out = append(out, Wrap(c))
		}
	}
	return out
}

// OwnText returns the element's own text
func (e Element) OwnText() (string, error) {
	text, ok := e.Text()
	if !ok {
		return "", &models.EopkgError{
			Type:  models.ErrMissingField,
			Path:  e.Path(),
			Field: "text()",
		}
	}
	return text, nil
}

// Attribute returns the value of the named attribute
func (e Element) Attribute(name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok {
		return "", &models.EopkgError{
			Type:  models.ErrMissingAttribute,
			Path:  e.Path(),
			Field: name,
		}
	}
	return v, nil
}

// AttributeUint parses the named attribute as a decimal unsigned integer
func (e Element) AttributeUint(name string, bitSize int) (uint64, error) {
	raw, err := e.Attribute(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 10, bitSize)
	if err != nil {
		return 0, e.invalidValue(name, raw, err)
	}
	return v, nil
}

// RequiredChildUint parses the child's text as a decimal unsigned integer
func (e Element) RequiredChildUint(tag string, bitSize int) (uint64, error) {
	raw, err := e.RequiredChildText(tag)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 10, bitSize)
	if err != nil {
		return 0, e.invalidValue(tag, raw, err)
	}
	return v, nil
}

// RequiredChildOctal parses the child's text as base-8 permission bits
func (e Element) RequiredChildOctal(tag string) (uint32, error) {
	raw, err := e.RequiredChildText(tag)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 8, 32)
	if err != nil {
		return 0, e.invalidValue(tag, raw, err)
	}
	return uint32(v), nil
}

// RequiredChildDate parses the child's text as a YYYY-MM-DD date in UTC
func (e Element) RequiredChildDate(tag string) (time.Time, error) {
	raw, err := e.RequiredChildText(tag)
	if err != nil {
		return time.Time{}, err
	}
	v, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, e.invalidValue(tag, raw, err)
	}
	return v, nil
}

// Collect maps every element independently and partitions the results.
// The returned slice is never nil.
func Collect[T any](elements []Element, fn func(Element) (T, error)) ([]T, []error) {
	values := make([]T, 0, len(elements))
	var failures []error
	for _, el := range elements {
		v, err := fn(el)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		values = append(values, v)
	}
	return values, failures
}
