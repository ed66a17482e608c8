/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Attribute constructors
 */

package ipp

import (
	"github.com/OpenPrinting/goipp"
)

// URIAttr makes attribute of the uri type
func URIAttr(name, val string, vals ...string) goipp.Attribute {
	return stringAttr(name, goipp.TagURI, val, vals)
}

// KeywordAttr makes attribute of the keyword type
func KeywordAttr(name, val string, vals ...string) goipp.Attribute {
	return stringAttr(name, goipp.TagKeyword, val, vals)
}

// NameAttr makes attribute of the nameWithoutLanguage type
func NameAttr(name, val string, vals ...string) goipp.Attribute {
	return stringAttr(name, goipp.TagName, val, vals)
}

// TextAttr makes attribute of the textWithoutLanguage type
func TextAttr(name, val string, vals ...string) goipp.Attribute {
	return stringAttr(name, goipp.TagText, val, vals)
}

// MimeAttr makes attribute of the mimeMediaType type
func MimeAttr(name, val string, vals ...string) goipp.Attribute {
	return stringAttr(name, goipp.TagMimeType, val, vals)
}

// IntAttr makes attribute of the integer type
func IntAttr(name string, val int, vals ...int) goipp.Attribute {
	return intAttr(name, goipp.TagInteger, val, vals)
}

// EnumAttr makes attribute of the enum type
func EnumAttr(name string, val int, vals ...int) goipp.Attribute {
	return intAttr(name, goipp.TagEnum, val, vals)
}

// BoolAttr makes attribute of the boolean type
func BoolAttr(name string, val bool) goipp.Attribute {
	return goipp.MakeAttribute(name, goipp.TagBoolean, goipp.Boolean(val))
}

// RequestedAttrs makes requested-attributes out of list of names.
// If list is empty, dflt is used instead; if both are empty,
// ok is false
func RequestedAttrs(names, dflt []string) (attr goipp.Attribute, ok bool) {
	if len(names) == 0 {
		names = dflt
	}

	if len(names) == 0 {
		return
	}

	return KeywordAttr("requested-attributes", names[0], names[1:]...), true
}

// stringAttr makes attribute with one or more string values
func stringAttr(name string, tag goipp.Tag, val string, vals []string) goipp.Attribute {
	attr := goipp.MakeAttribute(name, tag, goipp.String(val))
	for _, v := range vals {
		attr.Values.Add(tag, goipp.String(v))
	}
	return attr
}

// intAttr makes attribute with one or more integer values
func intAttr(name string, tag goipp.Tag, val int, vals []int) goipp.Attribute {
	attr := goipp.MakeAttribute(name, tag, goipp.Integer(val))
	for _, v := range vals {
		attr.Values.Add(tag, goipp.Integer(v))
	}
	return attr
}
