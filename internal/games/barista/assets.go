package barista

// SoundPlayer plays named sound effects. Implementations must not block.
type SoundPlayer interface {
	PlaySound(name string)
}

// ImageSource resolves an asset name to the glyph used to draw it.
type ImageSource interface {
	Glyph(name string) (rune, bool)
}

// NopSoundPlayer is used when audio is disabled or unavailable.
type NopSoundPlayer struct{}

// PlaySound does nothing.
func (NopSoundPlayer) PlaySound(string) {}

// NopImageSource knows no assets, so the renderer falls back to its glyphs.
type NopImageSource struct{}

// Glyph always reports a miss.
func (NopImageSource) Glyph(string) (rune, bool) { return 0, false }

// Asset names asked of an ImageSource.
const (
	AssetHand       = "hand"
	AssetHandEmpty  = "hand_empty"
	AssetSugar      = "sugar_cube"
	AssetSplash     = "sugar_splash"
	AssetBounce     = "sugar_bounce"
	AssetCupFill    = "cup_fill"
	AssetBelt       = "conveyor_belt"
	AssetBeltStripe = "conveyor_stripe"
	AssetFloor      = "floor"
)

// GlyphTable is an ImageSource backed by a map.
type GlyphTable map[string]rune

// Glyph looks name up in the table.
func (t GlyphTable) Glyph(name string) (rune, bool) {
	r, ok := t[name]
	return r, ok
}

// DefaultGlyphs is the built-in terminal art.
var DefaultGlyphs = GlyphTable{
	AssetHand:       'Ѱ',
	AssetHandEmpty:  'ѱ',
	AssetSugar:      '■',
	AssetSplash:     '*',
	AssetBounce:     '°',
	AssetCupFill:    '▓',
	AssetBelt:       '═',
	AssetBeltStripe: '╪',
	AssetFloor:      '▔',
}
