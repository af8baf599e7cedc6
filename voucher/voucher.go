package voucher

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

const (
	Length  = 6
	Charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	codeShape = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	nonAlnum  = regexp.MustCompile(`[^A-Z0-9]`)
)

// Source yields uniform integers in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Generator produces voucher codes. It does not check uniqueness; the
// persistence layer does.
type Generator struct {
	src Source
}

// NewGenerator uses src, or a crypto/rand backed source when src is nil.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = cryptoSource{}
	}
	return &Generator{src: src}
}

func (g *Generator) Generate() string {
	var sb strings.Builder
	sb.Grow(Length)
	for i := 0; i < Length; i++ {
		sb.WriteByte(Charset[g.src.Intn(len(Charset))])
	}
	return sb.String()
}

// Normalize cleans user input: trims, uppercases, drops separators.
func Normalize(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	return nonAlnum.ReplaceAllString(s, "")
}

// Valid reports whether code has the shape of an issued voucher.
func Valid(code string) bool {
	return codeShape.MatchString(code)
}

type cryptoSource struct{}

// Intn uses rand.Int to avoid modulo bias; safe for concurrent use.
func (cryptoSource) Intn(n int) int {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("voucher: crypto/rand unavailable: " + err.Error())
	}
	return int(num.Int64())
}
