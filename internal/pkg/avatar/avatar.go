// Package avatar renders deterministic avatars for anonymous identities.
// The same seed, style and color always produce the same avatar, so nothing is stored.
package avatar

import (
	"strings"
	"unicode/utf16"

	"github.com/campuscope/campuscope/internal/app/models"
)

// DefaultSeed is used when no seed is supplied
const DefaultSeed = "anonymous"

// Avatar is the rendered form: a short text glyph on a background
type Avatar struct {
	Seed       string
	Style      models.AvatarStyle
	Color      models.AvatarColor
	Text       string
	Background string
}

var emojis = []string{"🦊", "🐱", "🐼", "🐨", "🐯", "🦁", "🐮", "🐷", "🐸", "🐙", "🦄", "🦉", "🦋", "🐝", "🐢"}

var gradients = map[models.AvatarColor]string{
	models.AvatarColorPink:   "from-pink-500 to-purple-500",
	models.AvatarColorPurple: "from-purple-500 to-indigo-500",
	models.AvatarColorIndigo: "from-indigo-500 to-blue-500",
	models.AvatarColorBlue:   "from-blue-500 to-cyan-500",
	models.AvatarColorCyan:   "from-cyan-500 to-teal-500",
	models.AvatarColorTeal:   "from-teal-500 to-green-500",
	models.AvatarColorGreen:  "from-green-500 to-lime-500",
	models.AvatarColorYellow: "from-lime-500 to-yellow-500",
	models.AvatarColorOrange: "from-yellow-500 to-amber-500",
	models.AvatarColorRed:    "from-orange-500 to-red-500",
}

var patterns = map[models.AvatarColor]string{
	models.AvatarColorBlue:   "bg-blue-100 dark:bg-blue-900",
	models.AvatarColorGreen:  "bg-green-100 dark:bg-green-900",
	models.AvatarColorYellow: "bg-yellow-100 dark:bg-yellow-900",
	models.AvatarColorRed:    "bg-red-100 dark:bg-red-900",
	models.AvatarColorPurple: "bg-purple-100 dark:bg-purple-900",
	models.AvatarColorPink:   "bg-pink-100 dark:bg-pink-900",
	models.AvatarColorOrange: "bg-orange-100 dark:bg-orange-900",
	models.AvatarColorCyan:   "bg-cyan-100 dark:bg-cyan-900",
	models.AvatarColorTeal:   "bg-teal-100 dark:bg-teal-900",
	models.AvatarColorIndigo: "bg-indigo-100 dark:bg-indigo-900",
}

var abstractPatterns = []string{
	"radial-gradient(circle, rgba(63,94,251,1) 0%, rgba(252,70,107,1) 100%)",
	"linear-gradient(45deg, #ff9a9e 0%, #fad0c4 99%, #fad0c4 100%)",
	"linear-gradient(to top, #a18cd1 0%, #fbc2eb 100%)",
	"linear-gradient(to right, #ff8177 0%, #ff867a 0%, #ff8c7f 21%, #f99185 52%, #cf556c 78%, #b12a5b 100%)",
	"linear-gradient(120deg, #f6d365 0%, #fda085 100%)",
	"linear-gradient(to top, #48c6ef 0%, #6f86d6 100%)",
	"linear-gradient(to right, #4facfe 0%, #00f2fe 100%)",
	"linear-gradient(to top, #0ba360 0%, #3cba92 100%)",
	"linear-gradient(to top, #ff0844 0%, #ffb199 100%)",
	"linear-gradient(to right, #434343 0%, black 100%)",
}

// Hash folds the seed's UTF-16 code units with h = c + (h<<5 - h), where the shift
// operates on the low 32 bits, and returns the absolute value.
func Hash(seed string) int64 {
	var h int64
	for _, unit := range utf16.Encode([]rune(seed)) {
		shifted := int64(int32(uint32(int32(h)) << 5))
		h = int64(unit) + (shifted - h)
	}
	if h < 0 {
		h = -h
	}
	return h
}

// Initials returns the first two characters of seed, upper-cased
func Initials(seed string) string {
	runes := []rune(seed)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// Emoji picks the seed's emoji
func Emoji(seed string) string {
	return emojis[Hash(seed)%int64(len(emojis))]
}

// Render builds the avatar for seed. Unknown styles fall back to gradient and unknown colors to blue.
func Render(seed string, style models.AvatarStyle, color models.AvatarColor) Avatar {
	if seed == "" {
		seed = DefaultSeed
	}
	if !style.Valid() {
		style = models.DefaultAvatarStyle
	}
	if !color.Valid() {
		color = models.DefaultAvatarColor
	}

	a := Avatar{Seed: seed, Style: style, Color: color, Text: Initials(seed)}
	switch style {
	case models.AvatarStyleGradient:
		a.Background = "bg-gradient-to-br " + gradients[color]
	case models.AvatarStyleEmoji:
		a.Text = Emoji(seed)
		a.Background = patterns[color]
	case models.AvatarStyleInitials:
		a.Background = "bg-primary"
	case models.AvatarStylePattern:
		a.Background = patterns[color]
	case models.AvatarStyleAbstract:
		a.Background = abstractPatterns[Hash(seed)%int64(len(abstractPatterns))]
	}
	return a
}
