package observability

import (
	"os"

	"github.com/grafana/pyroscope-go"
)

// StartProfiling attaches the process to a Pyroscope server when
// PYROSCOPE_SERVER_ADDRESS is set; otherwise it is a no-op so local runs
// need no profiling backend.
func StartProfiling(serviceName string) {
	addr := os.Getenv("PYROSCOPE_SERVER_ADDRESS")
	if addr == "" {
		return
	}
	_, _ = pyroscope.Start(pyroscope.Config{
		ApplicationName: serviceName,
		ServerAddress:   addr,
		Logger:          nil,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
}
