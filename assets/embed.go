package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed countries.json flags.txt
var FS embed.FS

// CountriesJSON returns the raw bundled country data.
func CountriesJSON() ([]byte, error) {
	return FS.ReadFile("countries.json")
}

// FlagCodes returns the country codes that ship with a renderable asset,
// one per line in flags.txt. Blank lines and #-comments are skipped.
func FlagCodes() ([]string, error) {
	f, err := FS.Open("flags.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}
