package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// MalformedResponseError reports a body that could not be parsed as XML.
type MalformedResponseError struct {
	Err     error
	Snippet string // Leading part of the body, for diagnostics
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed XML response: %v (body starts with %q)", e.Err, e.Snippet)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

const snippetLength = 120

var compiledPaths = compilePaths(ResultPaths)

func compilePaths(paths []string) []*xpath.Expr {
	exprs := make([]*xpath.Expr, len(paths))
	for i, p := range paths {
		exprs[i] = xpath.MustCompile(p)
	}
	return exprs
}

// Parse maps an XML list response to service records. It never fails the caller:
// the returned slice is always non-nil, and a non-nil error is a diagnostic
// (*MalformedResponseError) accompanying an empty result.
func Parse(body []byte) ([]welfare.ServiceRecord, error) {
	records := make([]welfare.ServiceRecord, 0)

	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return records, &MalformedResponseError{Err: err, Snippet: snippet(body)}
	}

	for _, node := range findResultNodes(doc) {
		records = append(records, mapRecord(node))
	}
	return records, nil
}

// findResultNodes returns the matches of the first result path with at least one match.
func findResultNodes(doc *xmlquery.Node) []*xmlquery.Node {
	for _, expr := range compiledPaths {
		if nodes := xmlquery.QuerySelectorAll(doc, expr); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

func mapRecord(node *xmlquery.Node) welfare.ServiceRecord {
	var record welfare.ServiceRecord
	for _, field := range welfare.Fields {
		record.Set(field, firstChildText(node, FieldAliases[field]))
	}
	return record
}

// firstChildText returns the first non-empty text among the direct children named by tags.
func firstChildText(node *xmlquery.Node, tags []string) string {
	for _, tag := range tags {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.ElementNode || child.Data != tag {
				continue
			}
			if text := strings.TrimSpace(child.InnerText()); text != "" {
				return text
			}
		}
	}
	return ""
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	r := []rune(s)
	if len(r) > snippetLength {
		return string(r[:snippetLength])
	}
	return s
}
