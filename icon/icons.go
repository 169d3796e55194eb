package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Lua Icon = iota + 1
	Fail
	Success
	Progress
	Play
	Pause
	Buffering
	Chapter
	Hook
	History
)

var icons = map[Icon]glyphs{
	Lua: {
		Emoji:   "🌙",
		Nerd:    "",
		Plain:   "Lua",
		Kaomoji: "(=^･ω･^=)",
		Squares: "◧",
	},
	Fail: {
		Emoji:   "💀",
		Nerd:    "",
		Plain:   "X",
		Kaomoji: "(╥﹏╥)",
		Squares: "▨",
	},
	Success: {
		Emoji:   "🎉",
		Nerd:    "",
		Plain:   "✓",
		Kaomoji: "(ᵔ◡ᵔ)",
		Squares: "▣",
	},
	Progress: {
		Emoji:   "👾",
		Nerd:    "",
		Plain:   "@",
		Kaomoji: "┌( >_<)┘",
		Squares: "▤",
	},
	Play: {
		Emoji:   "▶️",
		Nerd:    "",
		Plain:   ">",
		Kaomoji: "ᕕ( ᐛ )ᕗ",
		Squares: "▶",
	},
	Pause: {
		Emoji:   "⏸️",
		Nerd:    "",
		Plain:   "||",
		Kaomoji: "(－_－) zzZ",
		Squares: "▮▮",
	},
	Buffering: {
		Emoji:   "⏳",
		Nerd:    "",
		Plain:   "...",
		Kaomoji: "(・_・;)",
		Squares: "▦",
	},
	Chapter: {
		Emoji:   "🔖",
		Nerd:    "",
		Plain:   "#",
		Kaomoji: "φ(..)",
		Squares: "▥",
	},
	Hook: {
		Emoji:   "🪝",
		Nerd:    "",
		Plain:   "~",
		Kaomoji: "(ง •̀_•́)ง",
		Squares: "◩",
	},
	History: {
		Emoji:   "🕘",
		Nerd:    "",
		Plain:   "H",
		Kaomoji: "(￣ー￣)",
		Squares: "▧",
	},
}
