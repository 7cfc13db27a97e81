package route

import (
	"net/url"
	"strconv"
	"strings"

	"smartcart/internal/store"
)

const mapsDirBaseURL = "https://www.google.com/maps/dir/"

// MapsURL builds a shareable Google Maps round-trip link through the stores'
// addresses. Stores without an address are skipped.
func MapsURL(origin store.Location, stores []store.Store) string {
	if len(stores) == 0 {
		return ""
	}

	o := strconv.FormatFloat(origin.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(origin.Lng, 'f', -1, 64)

	stops := []string{o}
	for _, s := range stores {
		if s.Address == "" {
			continue
		}
		stops = append(stops, url.PathEscape(s.Address))
	}
	stops = append(stops, o)

	return mapsDirBaseURL + strings.Join(stops, "/")
}
