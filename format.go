/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Response formatting
 */

package ipp

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/OpenPrinting/goipp"
)

// Tree drawing
const (
	fmtBranch = "├── "
	fmtLast   = "└── "
	fmtPipe   = "│   "
	fmtSpace  = "    "
)

// Format renders IPP response as indented human-readable tree
func Format(msg *goipp.Message) string {
	f := Flatten(msg)
	buf := &bytes.Buffer{}

	buf.WriteString("IPP Response\n")
	fmt.Fprintf(buf, "%sVersion: %s\n", fmtBranch, f.Version)
	fmt.Fprintf(buf, "%sStatus: %s (0x%4.4x)\n", fmtBranch,
		goipp.Status(f.Code), uint16(f.Code))
	fmt.Fprintf(buf, "%sRequest ID: %d\n", fmtBranch, f.RequestID)
	fmt.Fprintf(buf, "%sGroups:\n", fmtLast)

	for i, tag := range f.order {
		last := i == len(f.order)-1
		branch, indent := fmtPoint(fmtSpace, last)

		switch grp := f.Groups[tag].(type) {
		case map[string]any:
			fmt.Fprintf(buf, "%s%s:\n", branch, tag)
			formatAttrs(buf, indent, grp)

		case []map[string]any:
			fmt.Fprintf(buf, "%s%s [%d items]:\n", branch, tag, len(grp))
			for j, attrs := range grp {
				itemBranch, itemIndent := fmtPoint(indent, j == len(grp)-1)
				fmt.Fprintf(buf, "%sItem %d:\n", itemBranch, j+1)
				formatAttrs(buf, itemIndent, attrs)
			}
		}
	}

	return buf.String()
}

// fmtPoint returns prefix of the tree node line and indentation
// of its children
func fmtPoint(indent string, last bool) (branch, child string) {
	if last {
		return indent + fmtLast, indent + fmtSpace
	}
	return indent + fmtBranch, indent + fmtPipe
}

// formatAttrs writes attributes, sorted by name
func formatAttrs(buf *bytes.Buffer, indent string, attrs map[string]any) {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}

	sort.Strings(names)

	for i, name := range names {
		branch, _ := fmtPoint(indent, i == len(names)-1)
		fmt.Fprintf(buf, "%s%s: %s\n", branch, name, formatValue(attrs[name]))
	}
}

// formatValue formats flattened attribute value
func formatValue(v any) string {
	switch v := v.(type) {
	case []any:
		s := make([]string, len(v))
		for i := range v {
			s[i] = formatValue(v[i])
		}
		return strings.Join(s, ", ")

	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)

		s := make([]string, len(names))
		for i, name := range names {
			s[i] = name + "=" + formatValue(v[name])
		}
		return "{" + strings.Join(s, " ") + "}"
	}

	return fmt.Sprint(v)
}
