package rescan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ms42scan/ms42scan/model"
)

// embeddedDataElement is a regex-extracted EMBEDDEDDATA tag: the address
// and dimensions the rescanner needs, parsed straight out of rawXML
// without a full XML parser (the catalog's fragments are small and
// attribute shapes are uniform).
type embeddedDataElement struct {
	raw             string // the full matched <EMBEDDEDDATA .../> text
	origAddress     int64
	cols            int
	rows            int
	elementSizeBits int
}

var embeddedDataTagRe = regexp.MustCompile(`(?is)<EMBEDDEDDATA\b[^>]*/?>`)

// attrRe builds a case-insensitive attribute matcher accepting either
// quote style, for a single attribute name.
func attrRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)\b` + regexp.QuoteMeta(name) + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)
}

var (
	addressAttrs   = []string{"mmedaddress"}
	colAttrs       = []string{"colcount", "mmedcolcount"}
	rowAttrs       = []string{"rowcount", "mmedrowcount"}
	elemBitsAttrs  = []string{"mmedelementsizebits", "mmedelementsize"}
	attrRegexCache = map[string]*regexp.Regexp{}
)

func findAttr(elementText string, names []string) (string, bool) {
	for _, name := range names {
		re, ok := attrRegexCache[name]
		if !ok {
			re = attrRe(name)
			attrRegexCache[name] = re
		}
		m := re.FindStringSubmatch(elementText)
		if m == nil {
			continue
		}
		if m[1] != "" {
			return m[1], true
		}
		return m[2], true
	}
	return "", false
}

// parseAddress accepts decimal or 0x-prefixed hex, case-insensitive.
func parseAddress(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parsePositiveInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// findEmbeddedData extracts every EMBEDDEDDATA element from rawXML,
// skipping (not erroring on) any element missing a required attribute
// or carrying non-positive dimensions; model.ErrMalformedTemplate is
// returned only when rawXML contains no usable element at all.
func findEmbeddedData(rawXML string) ([]embeddedDataElement, error) {
	tags := embeddedDataTagRe.FindAllString(rawXML, -1)
	var out []embeddedDataElement
	for _, tag := range tags {
		el, ok := parseEmbeddedDataTag(tag)
		if !ok {
			continue
		}
		out = append(out, el)
	}
	if len(out) == 0 {
		return nil, model.ErrMalformedTemplate
	}
	return out, nil
}

func parseEmbeddedDataTag(tag string) (embeddedDataElement, bool) {
	addrStr, ok := findAttr(tag, addressAttrs)
	if !ok {
		return embeddedDataElement{}, false
	}
	addr, ok := parseAddress(addrStr)
	if !ok {
		return embeddedDataElement{}, false
	}

	colStr, ok := findAttr(tag, colAttrs)
	if !ok {
		return embeddedDataElement{}, false
	}
	cols, ok := parsePositiveInt(colStr)
	if !ok {
		return embeddedDataElement{}, false
	}

	rowStr, ok := findAttr(tag, rowAttrs)
	if !ok {
		return embeddedDataElement{}, false
	}
	rows, ok := parsePositiveInt(rowStr)
	if !ok {
		return embeddedDataElement{}, false
	}

	bitsStr, ok := findAttr(tag, elemBitsAttrs)
	if !ok {
		return embeddedDataElement{}, false
	}
	bits, ok := parsePositiveInt(bitsStr)
	if !ok {
		return embeddedDataElement{}, false
	}

	return embeddedDataElement{
		raw:             tag,
		origAddress:     addr,
		cols:            cols,
		rows:            rows,
		elementSizeBits: bits,
	}, true
}
