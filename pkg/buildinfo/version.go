// Package buildinfo carries version information injected at link time:
//
//	go build -ldflags "-X github.com/ReFLEX-Lab-York/trafficMISBP/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/ReFLEX-Lab-York/trafficMISBP/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/ReFLEX-Lab-York/trafficMISBP/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/trafficmis
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information in serializable form.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
