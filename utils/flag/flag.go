package flag

import "flag"

var (
	// ServiceName tags log output so multiple deployments of the backend can
	// be told apart.
	ServiceName = flag.String("service", "socialfeed_backend", "name of the service")
)

func ParseFlags() {
	if !flag.Parsed() {
		flag.Parse()
	}
}
