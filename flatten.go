/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Response flattening
 */

package ipp

import (
	"github.com/OpenPrinting/goipp"
)

// Flattened is the IPP message, reshaped for human-facing
// presentation.
//
// Each attribute group becomes map[string]any, where single-value
// attributes are collapsed to the bare value and multi-value
// attributes are kept as []any. If message contains the same
// group tag more that once, the Groups entry for this tag becomes
// []map[string]any, in order of appearance
type Flattened struct {
	Version   goipp.Version     // Protocol version
	Code      goipp.Code        // Status or operation code
	RequestID uint32            // Request ID
	Groups    map[goipp.Tag]any // Groups, by tag
	order     []goipp.Tag       // Order of group tags
}

// Tags returns group tags in order of their first appearance
func (f *Flattened) Tags() []goipp.Tag {
	return append([]goipp.Tag(nil), f.order...)
}

// Flatten reshapes the message into Flattened
func Flatten(msg *goipp.Message) *Flattened {
	f := &Flattened{
		Version:   msg.Version,
		Code:      msg.Code,
		RequestID: msg.RequestID,
		Groups:    make(map[goipp.Tag]any),
	}

	for _, grp := range flattenGroups(msg) {
		attrs := flattenAttrs(grp.Attrs)

		switch prev := f.Groups[grp.Tag].(type) {
		case nil:
			f.Groups[grp.Tag] = attrs
			f.order = append(f.order, grp.Tag)
		case map[string]any:
			f.Groups[grp.Tag] = []map[string]any{prev, attrs}
		case []map[string]any:
			f.Groups[grp.Tag] = append(prev, attrs)
		}
	}

	return f
}

// flattenGroups returns message groups. Decoded messages have
// msg.Groups set; for hand-made messages, named per-group fields
// are used
func flattenGroups(msg *goipp.Message) goipp.Groups {
	if msg.Groups != nil {
		return msg.Groups
	}

	named := goipp.Groups{
		{Tag: goipp.TagOperationGroup, Attrs: msg.Operation},
		{Tag: goipp.TagJobGroup, Attrs: msg.Job},
		{Tag: goipp.TagPrinterGroup, Attrs: msg.Printer},
		{Tag: goipp.TagUnsupportedGroup, Attrs: msg.Unsupported},
		{Tag: goipp.TagSubscriptionGroup, Attrs: msg.Subscription},
		{Tag: goipp.TagEventNotificationGroup, Attrs: msg.EventNotification},
		{Tag: goipp.TagResourceGroup, Attrs: msg.Resource},
		{Tag: goipp.TagDocumentGroup, Attrs: msg.Document},
		{Tag: goipp.TagSystemGroup, Attrs: msg.System},
	}

	var groups goipp.Groups
	for _, grp := range named {
		if grp.Attrs != nil {
			groups = append(groups, grp)
		}
	}

	return groups
}

// flattenAttrs converts attributes into map
func flattenAttrs(attrs goipp.Attributes) map[string]any {
	out := make(map[string]any, len(attrs))

	for _, attr := range attrs {
		switch len(attr.Values) {
		case 0:
			out[attr.Name] = nil
		case 1:
			out[attr.Name] = flattenValue(attr.Values[0].V)
		default:
			vals := make([]any, len(attr.Values))
			for i, v := range attr.Values {
				vals[i] = flattenValue(v.V)
			}
			out[attr.Name] = vals
		}
	}

	return out
}

// flattenValue converts goipp.Value into the native Go value
func flattenValue(v goipp.Value) any {
	switch v := v.(type) {
	case goipp.Integer:
		return int(v)
	case goipp.Boolean:
		return bool(v)
	case goipp.String:
		return string(v)
	case goipp.Collection:
		return flattenAttrs(goipp.Attributes(v))
	}

	return v.String()
}
