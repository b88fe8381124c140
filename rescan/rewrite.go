package rescan

import (
	"fmt"
	"regexp"
	"strconv"
)

// numberTokenRe matches either a 0x-prefixed hex literal or a bare
// decimal run, in a single left-to-right pass so replacements never
// double-match a span.
var numberTokenRe = regexp.MustCompile(`0[xX][0-9A-Fa-f]+|[0-9]+`)

// rewriteAddress textually replaces every occurrence of origAddress,
// both its hex and decimal spellings, in rawXML with newAddress: hex
// occurrences become a zero-padded 6-digit uppercase `0x` form;
// decimal occurrences become the plain decimal form. Matching is
// case-insensitive and covers every occurrence, not just the
// EMBEDDEDDATA element's own address attribute.
func rewriteAddress(rawXML string, origAddress, newAddress int64) string {
	hexReplacement := fmt.Sprintf("0x%06X", newAddress)
	decReplacement := strconv.FormatInt(newAddress, 10)

	return numberTokenRe.ReplaceAllStringFunc(rawXML, func(tok string) string {
		if len(tok) > 2 && (tok[0:2] == "0x" || tok[0:2] == "0X") {
			v, err := strconv.ParseInt(tok[2:], 16, 64)
			if err != nil || v != origAddress {
				return tok
			}
			return hexReplacement
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil || v != origAddress {
			return tok
		}
		return decReplacement
	})
}
