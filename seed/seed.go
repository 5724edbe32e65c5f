// Package seed derives the per-nonce random seed of a benchmark instance.
//
// The seed is computed from a textual phrase built from the submission
// identity. The phrase format is shared with the verifying side of the
// protocol, so it must stay byte-for-byte stable.
package seed

import (
	"encoding/binary"
	"strconv"
	"strings"
	"unicode"

	"github.com/minio/sha256-simd"

	"github.com/the-innovation-game/benchmarker/shared"
)

// Calc returns the seed of the benchmark instance identified by the given
// parameters and nonce: the last 4 bytes of SHA-256(Phrase(...)), big-endian.
func Calc(playerID, blockID, prevBlockID, algorithmID, challengeID string, difficulty shared.Difficulty, nonce uint64) uint32 {
	phrase := Phrase(playerID, blockID, prevBlockID, algorithmID, challengeID, difficulty, nonce)
	digest := sha256.Sum256([]byte(phrase))
	return binary.BigEndian.Uint32(digest[len(digest)-4:])
}

// Phrase builds the comma separated seed phrase. The difficulty is rendered as
// a list of (key, value) tuples sorted by key, e.g. [('x', 5), ('y', 3)].
func Phrase(playerID, blockID, prevBlockID, algorithmID, challengeID string, difficulty shared.Difficulty, nonce uint64) string {
	var b strings.Builder
	for _, s := range []string{playerID, blockID, prevBlockID, algorithmID, challengeID} {
		b.WriteString(s)
		b.WriteByte(',')
	}
	writeDifficulty(&b, difficulty)
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(nonce, 10))
	return b.String()
}

func writeDifficulty(b *strings.Builder, difficulty shared.Difficulty) {
	b.WriteByte('[')
	for i, k := range difficulty.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		writeQuoted(b, k)
		b.WriteString(", ")
		b.WriteString(strconv.FormatInt(difficulty[k], 10))
		b.WriteByte(')')
	}
	b.WriteByte(']')
}

// writeQuoted writes s as a quoted string literal. Single quotes are used
// unless s contains a single quote and no double quote. Non-printable runes
// are escaped as \xNN, \uNNNN or \UNNNNNNNN depending on their width.
func writeQuoted(b *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == ' ' || unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			writeEscape(b, 'x', r, 2)
		case r <= 0xffff:
			writeEscape(b, 'u', r, 4)
		default:
			writeEscape(b, 'U', r, 8)
		}
	}
	b.WriteByte(quote)
}

func writeEscape(b *strings.Builder, kind byte, r rune, width int) {
	const digits = "0123456789abcdef"
	b.WriteByte('\\')
	b.WriteByte(kind)
	for shift := 4 * (width - 1); shift >= 0; shift -= 4 {
		b.WriteByte(digits[(r>>shift)&0x0f])
	}
}
