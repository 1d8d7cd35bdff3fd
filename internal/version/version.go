// internal/version/version.go
package version

// Version is stamped at build time:
//
//	go build -ldflags "-X qctriage/internal/version.Version=v1.2.0" ./cmd/qctriage
var Version = "dev"
