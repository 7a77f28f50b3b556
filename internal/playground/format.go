package playground

import (
	"fmt"
	"rpg/internal/models"
	"rpg/internal/options"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// FormatOutput joins stderr and stdout, stderr first.
func FormatOutput(res *models.ExecuteResponse) string {
	return res.Stderr + "\n" + res.Stdout
}

// EncodeCode percent-encodes every byte that is not an ASCII letter or
// digit, including "-_.~" and spaces, which url.QueryEscape leaves alone or
// turns into '+'.
func EncodeCode(code string) string {
	var b strings.Builder
	b.Grow(len(code) * 3)
	for i := 0; i < len(code); i++ {
		c := code[i]
		if isAlnum(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func optionsQuery(base string, opts options.Options) string {
	return fmt.Sprintf("%s/?version=%s&mode=%s&edition=%s",
		strings.TrimRight(base, "/"), opts.Channel, opts.Mode, opts.Edition)
}

// RunURL embeds code directly in a playground URL.
func RunURL(base string, opts options.Options, code string) string {
	return optionsQuery(base, opts) + "&code=" + EncodeCode(code)
}

// ShareURL points at a stored gist, displayed with opts.
func ShareURL(base string, opts options.Options, gistID string) string {
	return optionsQuery(base, opts) + "&gist=" + gistID
}
