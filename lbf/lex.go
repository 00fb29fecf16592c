// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package lbf parses the LBF textual circuit format (spec §6) into a
// circuit.Circuit, running circuit.Check before returning it.
package lbf

import "strings"

// splitLogicalLines strips '#' end-of-line comments, splices backslash-
// continued lines into one (joined by a single space, per spec §4.C),
// and returns the remaining non-empty logical lines in order.
func splitLogicalLines(src string) []string {
	raw := strings.Split(src, "\n")
	for i, l := range raw {
		if idx := strings.IndexByte(l, '#'); idx >= 0 {
			raw[i] = l[:idx]
		}
	}

	var logical []string
	var pending strings.Builder
	have := false

	flush := func() {
		if have {
			if l := strings.TrimSpace(pending.String()); l != "" {
				logical = append(logical, l)
			}
			pending.Reset()
			have = false
		}
	}

	for _, l := range raw {
		l = strings.TrimRight(l, "\r")
		spliced := strings.HasSuffix(l, `\`)
		body := l
		if spliced {
			body = strings.TrimSuffix(l, `\`)
		}

		if have {
			pending.WriteByte(' ')
		}
		pending.WriteString(body)
		have = true

		if !spliced {
			flush()
		}
	}
	flush()

	return logical
}

// directive is one `.keyword ...` segment together with the plain data
// lines that followed it, up to the next directive line or `.end`.
type directive struct {
	keyword string
	header  []string // fields after the keyword, on the directive's own line
	body    []string // subsequent non-directive lines, verbatim (trimmed)
}

// splitDirectives groups logical lines into directive segments. Parsing
// stops at `.end`; everything after it is discarded per spec §4.C.
func splitDirectives(lines []string) []directive {
	var out []directive
	for _, l := range lines {
		if strings.HasPrefix(l, ".") {
			fields := strings.Fields(l[1:])
			if len(fields) == 0 {
				continue
			}
			d := directive{keyword: fields[0], header: fields[1:]}
			out = append(out, d)
			if d.keyword == "end" {
				return out
			}
			continue
		}
		if len(out) == 0 {
			continue
		}
		out[len(out)-1].body = append(out[len(out)-1].body, l)
	}
	return out
}
