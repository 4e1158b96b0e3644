package relevance

import "strings"

// platformAliases maps a canonical platform name, as returned by the game
// database, to the shorthand names Reddit users and subreddits actually use.
var platformAliases = map[string][]string{
	"playstation":         {"ps1", "psx"},
	"playstation 2":       {"ps2"},
	"playstation 3":       {"ps3"},
	"playstation 4":       {"ps4"},
	"playstation 5":       {"ps5"},
	"ps vita":             {"vita", "psvita"},
	"psp":                 {"playstation portable"},
	"xbox":                {"og xbox"},
	"xbox 360":            {"x360"},
	"xbox one":            {"xbone"},
	"xbox series s/x":     {"xbox series x", "xbox series s", "xboxseriesx"},
	"nintendo switch":     {"switch"},
	"nintendo 64":         {"n64"},
	"nintendo ds":         {"nds"},
	"nintendo 3ds":        {"3ds"},
	"game boy":            {"gameboy"},
	"game boy advance":    {"gba"},
	"gamecube":            {"game cube", "ngc"},
	"snes":                {"super nintendo", "super nes"},
	"nes":                 {"nintendo entertainment system"},
	"genesis":             {"mega drive", "megadrive", "sega genesis"},
	"sega saturn":         {"saturn"},
	"dreamcast":           {"sega dreamcast"},
	"game gear":           {"gamegear"},
	"sega master system":  {"master system"},
	"pc":                  {"windows", "steam deck"},
	"macos":               {"mac", "os x"},
	"linux":               {"steamos"},
	"commodore / amiga":   {"commodore", "amiga"},
	"atari st":            {"atari"},
	"atari 2600":          {"atari"},
	"wii":                 {"nintendo wii"},
	"wii u":               {"wiiu"},
	"ios":                 {"iphone", "ipad"},
	"android":             {"mobile"},
}

// gamingCommunities are general-purpose subreddits whose name alone signals
// a gaming context even though it names no platform or title.
var gamingCommunities = []string{
	"gaming", "games", "videogames", "truegaming", "patientgamers",
	"retrogaming", "gamingsuggestions", "shouldibuythisgame",
}

// PlatformAliases returns the known shorthand names for a platform,
// excluding the canonical name itself. Unknown platforms have none.
func PlatformAliases(platform string) []string {
	return platformAliases[strings.ToLower(strings.TrimSpace(platform))]
}

// containsPlatformAlias reports whether text mentions the platform by its
// canonical name or any alias.
func containsPlatformAlias(text, platform string) bool {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		return false
	}
	if strings.Contains(text, platform) {
		return true
	}
	for _, alias := range platformAliases[platform] {
		if strings.Contains(text, alias) {
			return true
		}
	}
	return false
}

// isGamingCommunity reports whether a community name is one of the known
// general gaming subreddits.
func isGamingCommunity(community string) bool {
	for _, name := range gamingCommunities {
		if community == name {
			return true
		}
	}
	return false
}
