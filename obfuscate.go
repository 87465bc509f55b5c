package main

import (
	"fmt"
	"strings"
)

// obfuscateEmail encodes addr for the deobfuscate() routine in js.js: the
// two-digit key followed by one three-digit group per byte. Even positions
// store c-key, odd ones c+key; negative values are shifted up by 500.
//
// The decoder treats every group above 300 as shifted, so only ASCII
// addresses survive the round trip.
func obfuscateEmail(addr string, key int) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d", key)
	for i := 0; i < len(addr); i++ {
		if addr[i] >= 0x80 {
			return "", fmt.Errorf("obfuscating %q: only ASCII addresses are supported", addr)
		}
		n := int(addr[i])
		if i%2 == 0 {
			n -= key
		} else {
			n += key
		}
		if n < 0 {
			n += 500
		}
		fmt.Fprintf(&b, "%03d", n)
	}
	return b.String(), nil
}
