package enrich

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sahayak/stations-cli/internal/model"
)

// WriteStations writes the dataset as a JSON array at path: 2-space indent,
// non-ASCII left unescaped. The write is a single pass with no partial-write
// recovery.
func WriteStations(path string, stations []model.Station) error {
	if stations == nil {
		// The artifact root must be an array, never null.
		stations = []model.Station{}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "enrich: create output dir for %s", path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "enrich: create %s", path)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(stations); err != nil {
		f.Close() //nolint:errcheck
		return eris.Wrapf(err, "enrich: encode %s", path)
	}

	return eris.Wrapf(f.Close(), "enrich: close %s", path)
}
