/* ipp-client - IPP and CUPS client library
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Glob-style matching of printer names
 */

package main

// globMatch matches printer name against glob-style pattern.
// Pattern may contain wildcards and has a following syntax:
//
//	?   - matches exactly one character
//	*   - matches any sequence of characters
//	\C  - matches character C
//	C   - matches character C (C is not *, ? or \)
//
// Empty pattern matches everything.
func globMatch(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	return globMatchRunes([]rune(name), []rune(pattern))
}

// globMatchRunes does the actual work of globMatch. Matching
// is done by runes, so '?' matches a single non-ASCII character
func globMatchRunes(name, pattern []rune) bool {
	for len(pattern) > 0 {
		p := pattern[0]
		pattern = pattern[1:]

		switch p {
		case '*':
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}

			if len(pattern) == 0 {
				return true
			}

			for i := range name {
				if globMatchRunes(name[i:], pattern) {
					return true
				}
			}

			return false

		case '?':
			if len(name) == 0 {
				return false
			}
			name = name[1:]

		case '\\':
			if len(pattern) == 0 {
				return false
			}
			p, pattern = pattern[0], pattern[1:]
			fallthrough

		default:
			if len(name) == 0 || name[0] != p {
				return false
			}
			name = name[1:]
		}
	}

	return len(name) == 0
}
