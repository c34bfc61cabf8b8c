// Package navmap searches paths over a colour-coded navigation image.
//
// Each pixel of the image is a tile whose terrain class is read from its RGB
// value. A unit may enter a tile when its traversable mask shares a bit with
// the tile's area mask.
package navmap

import "strings"

// Area is a bitmask over the terrain taxonomy.
type Area uint8

const (
	Neutral      Area = 1 << 0
	Blocked      Area = 1 << 1
	Forest       Area = 1 << 2
	Sea          Area = 1 << 3
	Mountain     Area = 1 << 4
	HighMountain Area = 1 << 5
)

// Land is every walkable non-water class.
const Land = Neutral | Forest | Mountain

// RGB is a pixel colour.
type RGB struct{ R, G, B uint8 }

var areaByColour = map[RGB]Area{
	{0xFF, 0xFF, 0xFF}: Blocked,
	{0x00, 0x00, 0xFF}: Sea,
	{0x77, 0x77, 0x77}: Mountain,
	{0x33, 0x33, 0x33}: HighMountain,
	{0x00, 0xFF, 0x00}: Forest,
}

// Classify maps a pixel colour to its area. Colours outside the table are
// Neutral.
func Classify(c RGB) Area {
	if a, ok := areaByColour[c]; ok {
		return a
	}
	return Neutral
}

// Traversable reports whether a unit with mask may enter a tile of area a.
func (mask Area) Traversable(a Area) bool {
	return mask&a != 0
}

var areaNames = []struct {
	name string
	area Area
}{
	{"neutral", Neutral},
	{"blocked", Blocked},
	{"forest", Forest},
	{"sea", Sea},
	{"mountain", Mountain},
	{"high_mountain", HighMountain},
}

// ParseArea returns the area named s (case-insensitive), e.g. "sea".
func ParseArea(s string) (Area, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range areaNames {
		if n.name == s {
			return n.area, true
		}
	}
	return 0, false
}

// ParseMask ORs together the named areas. Unknown names are returned in bad.
func ParseMask(names []string) (mask Area, bad []string) {
	for _, s := range names {
		a, ok := ParseArea(s)
		if !ok {
			bad = append(bad, s)
			continue
		}
		mask |= a
	}
	return mask, bad
}

func (mask Area) String() string {
	if mask == 0 {
		return "none"
	}
	var parts []string
	for _, n := range areaNames {
		if mask&n.area != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
