package lmapi

import (
	"sort"
	"strings"
)

// Filter is a closed tagged variant describing a platform filter expression.
// Build one with RawFilter, AttrFilter, or TripleFilter; Encode produces the
// escaped value of the `filter` query parameter.
type Filter struct {
	kind    filterKind
	raw     string
	attrs   []Attr
	triples []Triple
}

type filterKind int

const (
	filterRaw filterKind = iota
	filterAttrs
	filterTriples
)

// Attr is one attribute→expression pair. The comparison operator is embedded
// in the attribute itself (e.g. "cleared:" or "startEpoch>:").
type Attr struct {
	Attribute  string
	Expression string
}

// Triple is one attribute/operator/expression clause.
type Triple struct {
	Attribute  string
	Operator   string
	Expression string
}

// RawFilter wraps a pre-formatted filter string. Encode applies only the
// plus/backslash escaping; quoting and percent-encoding are the caller's
// responsibility. This is the escape hatch for expressions the structured
// variants cannot express.
func RawFilter(s string) *Filter {
	return &Filter{kind: filterRaw, raw: s}
}

// AttrFilter builds a filter from attribute→expression pairs. Pairs are
// encoded in a stable sort order by attribute.
func AttrFilter(attrs ...Attr) *Filter {
	return &Filter{kind: filterAttrs, attrs: attrs}
}

// TripleFilter builds a filter from attribute/operator/expression clauses,
// preserving input order.
func TripleFilter(triples ...Triple) *Filter {
	return &Filter{kind: filterTriples, triples: triples}
}

// stringAttrs are the string-typed filter attributes whose expressions the
// platform requires quoted and percent-encoded. Matched as a case-sensitive
// prefix so that operator suffixes ("displayName:", "displayName~") hit.
var stringAttrs = []string{
	"appliesTo",
	"collectorDescription",
	"dataSourceName",
	"description",
	"deviceDisplayName",
	"displayName",
	"domain",
	"groupName",
	"hostGroupIds",
	"hostName",
	"instanceName",
	"monitorObjectName",
	"name",
	"userName",
}

// isStringAttr reports whether the attribute (possibly carrying an operator
// suffix) names a string-typed field.
func isStringAttr(attr string) bool {
	for _, prefix := range stringAttrs {
		if strings.HasPrefix(attr, prefix) {
			return true
		}
	}

	return false
}

// escapeExpression applies the transport-level escaping every expression
// gets: plus signs are double-encoded because the transport decodes once
// before the server decodes again, and backslashes are split into two
// encoded halves.
func escapeExpression(expr string) string {
	expr = strings.ReplaceAll(expr, "+", "%252B")
	expr = strings.ReplaceAll(expr, "\\", "%5C%5C")

	return expr
}

// encodeExpression escapes an expression for the given attribute. String
// attributes additionally get quoted (unless already quoted) and the whole
// quoted expression percent-encoded.
func encodeExpression(attr, expr string) string {
	expr = escapeExpression(expr)

	if !isStringAttr(attr) {
		return expr
	}

	if !strings.HasPrefix(expr, `"`) || !strings.HasSuffix(expr, `"`) || len(expr) < 2 {
		expr = `"` + expr + `"`
	}

	return uriEscape(expr)
}

// uriEscape percent-encodes everything outside the RFC 3986 unreserved set.
// url.QueryEscape is unsuitable here: it emits '+' for spaces and leaves
// characters the platform rejects.
func uriEscape(s string) string {
	const upperhex = "0123456789ABCDEF"

	var builder strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			builder.WriteByte(c)
		default:
			builder.WriteByte('%')
			builder.WriteByte(upperhex[c>>4])
			builder.WriteByte(upperhex[c&0xf])
		}
	}

	return builder.String()
}

// Encode renders the filter as the value of the `filter` query parameter.
func (f *Filter) Encode() string {
	switch f.kind {
	case filterAttrs:
		attrs := make([]Attr, len(f.attrs))
		copy(attrs, f.attrs)
		sort.SliceStable(attrs, func(i, j int) bool {
			return attrs[i].Attribute < attrs[j].Attribute
		})

		parts := make([]string, 0, len(attrs))
		for _, a := range attrs {
			parts = append(parts, a.Attribute+encodeExpression(a.Attribute, a.Expression))
		}

		return strings.Join(parts, ",")

	case filterTriples:
		parts := make([]string, 0, len(f.triples))
		for _, t := range f.triples {
			parts = append(parts, t.Attribute+t.Operator+encodeExpression(t.Attribute, t.Expression))
		}

		return strings.Join(parts, ",")

	default:
		return escapeExpression(f.raw)
	}
}
