// Package icon renders UI symbols in the variant the user picked.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares.
package icon

import (
	"github.com/samber/lo"
	"github.com/scrub-cli/scrub/key"
	"github.com/spf13/viper"
)

// Variant is a visual style for icons.
type Variant string

const (
	Plain   Variant = "plain"
	Emoji   Variant = "emoji"
	Nerd    Variant = "nerd"
	Kaomoji Variant = "kaomoji"
	Squares Variant = "squares"
)

var variants = []Variant{Plain, Emoji, Nerd, Kaomoji, Squares}

// glyphs holds one symbol per variant.
type glyphs map[Variant]string

// AvailableVariants returns the names of every variant.
func AvailableVariants() []string {
	return lo.Map(variants, func(v Variant, _ int) string {
		return string(v)
	})
}

// Current returns the configured variant. Unknown names fall back to Plain.
func Current() Variant {
	v := Variant(viper.GetString(key.IconsVariant))
	if lo.Contains(variants, v) {
		return v
	}
	return Plain
}

// Get returns i in the configured variant.
func Get(i Icon) string {
	return In(i, Current())
}

// In returns i in variant v, or the plain symbol when v has none.
func In(i Icon, v Variant) string {
	g, ok := icons[i]
	if !ok {
		return ""
	}
	if s := g[v]; s != "" {
		return s
	}
	return g[Plain]
}
