package flagres

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/hightemp/countrydata/internal/dataset"
)

// GlobeEmoji is the globe used by EmojiResolver.
const GlobeEmoji Ref = "🌐"

// regionalIndicatorA is REGIONAL INDICATOR SYMBOL LETTER A.
const regionalIndicatorA = 0x1F1E6

// EmojiResolver renders flags as pairs of regional indicator symbols.
type EmojiResolver struct{}

// NewEmojiResolver creates an emoji flag resolver.
func NewEmojiResolver() *EmojiResolver {
	return &EmojiResolver{}
}

// Resolve returns the flag emoji for a known, non-private-use region.
func (r *EmojiResolver) Resolve(alpha2 string) (Ref, error) {
	if !dataset.ValidCode(alpha2, 2) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, alpha2)
	}
	code := strings.ToUpper(alpha2)

	region, err := language.ParseRegion(code)
	if err != nil || region.IsPrivateUse() {
		return "", fmt.Errorf("%w: %q", ErrNotFound, alpha2)
	}

	return Ref([]rune{
		rune(regionalIndicatorA + int(code[0]-'A')),
		rune(regionalIndicatorA + int(code[1]-'A')),
	}), nil
}

// Globe returns GlobeEmoji.
func (r *EmojiResolver) Globe() Ref {
	return GlobeEmoji
}
