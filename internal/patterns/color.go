package patterns

import (
	"regexp"
	"strings"
)

// ColorFormat is the syntax a color literal was written in.
type ColorFormat string

const (
	ColorHex   ColorFormat = "hex"
	ColorRGB   ColorFormat = "rgb"
	ColorHSL   ColorFormat = "hsl"
	ColorNamed ColorFormat = "named"
)

// ColorValue is a recognized color literal.
type ColorValue struct {
	Value  string
	Format ColorFormat
}

var (
	hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbColorRe = regexp.MustCompile(`(?i)^rgba?\(\s*\d{1,3}%?\s*,\s*\d{1,3}%?\s*,\s*\d{1,3}%?\s*(,\s*(\d*\.\d+|\d+%?)\s*)?\)$`)
	hslColorRe = regexp.MustCompile(`(?i)^hsla?\(\s*\d{1,3}(\.\d+)?(deg)?\s*,\s*\d{1,3}(\.\d+)?%\s*,\s*\d{1,3}(\.\d+)?%\s*(,\s*(\d*\.\d+|\d+%?)\s*)?\)$`)
)

// IsColorLiteral recognizes hex, rgb()/rgba(), hsl()/hsla() and CSS named
// colors after trimming surrounding whitespace.
func IsColorLiteral(text string) (ColorValue, bool) {
	s := strings.TrimSpace(text)
	switch {
	case s == "":
		return ColorValue{}, false
	case hexColorRe.MatchString(s):
		return ColorValue{Value: strings.ToLower(s), Format: ColorHex}, true
	case rgbColorRe.MatchString(s):
		return ColorValue{Value: s, Format: ColorRGB}, true
	case hslColorRe.MatchString(s):
		return ColorValue{Value: s, Format: ColorHSL}, true
	}
	if lower := strings.ToLower(s); namedColors[lower] {
		return ColorValue{Value: lower, Format: ColorNamed}, true
	}
	return ColorValue{}, false
}

var namedColors = toSet(
	"aliceblue", "antiquewhite", "aqua", "aquamarine", "azure", "beige", "bisque", "black",
	"blanchedalmond", "blue", "blueviolet", "brown", "burlywood", "cadetblue", "chartreuse",
	"chocolate", "coral", "cornflowerblue", "cornsilk", "crimson", "cyan", "darkblue", "darkcyan",
	"darkgoldenrod", "darkgray", "darkgreen", "darkgrey", "darkkhaki", "darkmagenta",
	"darkolivegreen", "darkorange", "darkorchid", "darkred", "darksalmon", "darkseagreen",
	"darkslateblue", "darkslategray", "darkslategrey", "darkturquoise", "darkviolet", "deeppink",
	"deepskyblue", "dimgray", "dimgrey", "dodgerblue", "firebrick", "floralwhite", "forestgreen",
	"fuchsia", "gainsboro", "ghostwhite", "gold", "goldenrod", "gray", "green", "greenyellow",
	"grey", "honeydew", "hotpink", "indianred", "indigo", "ivory", "khaki", "lavender",
	"lavenderblush", "lawngreen", "lemonchiffon", "lightblue", "lightcoral", "lightcyan",
	"lightgoldenrodyellow", "lightgray", "lightgreen", "lightgrey", "lightpink", "lightsalmon",
	"lightseagreen", "lightskyblue", "lightslategray", "lightslategrey", "lightsteelblue",
	"lightyellow", "lime", "limegreen", "linen", "magenta", "maroon", "mediumaquamarine",
	"mediumblue", "mediumorchid", "mediumpurple", "mediumseagreen", "mediumslateblue",
	"mediumspringgreen", "mediumturquoise", "mediumvioletred", "midnightblue", "mintcream",
	"mistyrose", "moccasin", "navajowhite", "navy", "oldlace", "olive", "olivedrab", "orange",
	"orangered", "orchid", "palegoldenrod", "palegreen", "paleturquoise", "palevioletred",
	"papayawhip", "peachpuff", "peru", "pink", "plum", "powderblue", "purple", "rebeccapurple",
	"red", "rosybrown", "royalblue", "saddlebrown", "salmon", "sandybrown", "seagreen",
	"seashell", "sienna", "silver", "skyblue", "slateblue", "slategray", "slategrey", "snow",
	"springgreen", "steelblue", "tan", "teal", "thistle", "tomato", "turquoise", "violet",
	"wheat", "white", "whitesmoke", "yellow", "yellowgreen", "transparent",
)

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
