// Package metrics wraps datadog-go to facilitate metric recording.
// Naming convention:
// - internal process time: *.time
// - error: *.err
// - counter: plain name
package metrics

import (
	"strings"

	"github.com/spf13/viper"
)

// Ender finishes a timer started by BumpTime
type Ender interface {
	End()
}

// Service provides the metric recording interface
type Service interface {
	BumpSum(key string, val float64, tags ...string)
	BumpAvg(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with pkgName as prefix. When no statsd agent
// address is configured the client degrades to debug logging.
func New(pkgName string) Service {
	addr := viper.GetString("statsd.addr")
	tags := []string{
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	var cli statsCli
	if addr == "" {
		cli = &logClient{}
	} else {
		cli = newStatsdClient(addr)
	}
	return &service{
		prefix: strings.TrimSuffix(pkgName, ".") + ".",
		tags:   tags,
		cli:    cli,
	}
}
