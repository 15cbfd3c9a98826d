package dataset

// teamNames maps NRL club identifiers to display names: the 16 clubs plus
// The Dolphins. Fixed for the life of the process.
var teamNames = map[int]string{
	500011: "Brisbane Broncos",
	500013: "Canberra Raiders",
	500010: "Canterbury-Bankstown Bulldogs",
	500028: "Cronulla-Sutherland Sharks",
	500004: "Gold Coast Titans",
	500002: "Manly-Warringah Sea Eagles",
	500021: "Melbourne Storm",
	500003: "Newcastle Knights",
	500032: "New Zealand Warriors",
	500012: "North Queensland Cowboys",
	500031: "Parramatta Eels",
	500014: "Penrith Panthers",
	500005: "South Sydney Rabbitohs",
	500022: "St George Illawarra Dragons",
	500001: "Sydney Roosters",
	500023: "Wests Tigers",
	500723: "The Dolphins",
}

// TeamName resolves a team id to its display name.
func TeamName(id int) (string, bool) {
	name, ok := teamNames[id]
	return name, ok
}
