package scrape

import "strings"

// AreaCentral is the fallback region for Bangalore stations whose name
// matches no keyword set.
const AreaCentral = "Bangalore Central"

// areaKeywords maps coarse Bangalore regions to station-name markers.
// Order matters: the first matching set wins.
var areaKeywords = []struct {
	area  string
	terms []string
}{
	{"Bangalore South", []string{"electronic", "btm", "koramangala", "hsr"}},
	{"Bangalore East", []string{"whitefield", "marathahalli", "brigade"}},
	{"Bangalore North", []string{"hebbal", "yelahanka", "airport"}},
	{"Bangalore West", []string{"rajajinagar", "malleshwaram", "jayanagar"}},
}

// ClassifyArea assigns a coarse Bangalore region from keyword markers in the
// station name.
func ClassifyArea(name string) string {
	lower := strings.ToLower(name)
	for _, set := range areaKeywords {
		for _, term := range set.terms {
			if strings.Contains(lower, term) {
				return set.area
			}
		}
	}
	return AreaCentral
}
