package metrics

import (
	"time"

	"github.com/DataDog/datadog-go/statsd"

	"github.com/heritage-x/goapi/base/log"
)

const (
	// rate to pass metrics to the agent, 1 means always
	sampleRate = 1
	// buffered counters before flushing to the agent
	bufferMetrics = 10
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func newStatsdClient(addr string) statsCli {
	cli, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Warn("can't talk to statsd agent, metrics degrade to logs")
		return &logClient{}
	}
	return cli
}

type service struct {
	prefix string
	tags   []string
	cli    statsCli
}

func (s *service) BumpSum(key string, val float64, tags ...string) {
	if err := s.cli.Count(s.prefix+key, int64(val), append(s.tags, parseTags(tags)...), sampleRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("BumpSum failed")
	}
}

func (s *service) BumpAvg(key string, val float64, tags ...string) {
	if err := s.cli.Gauge(s.prefix+key, val, append(s.tags, parseTags(tags)...), sampleRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("BumpAvg failed")
	}
}

func (s *service) BumpHistogram(key string, val float64, tags ...string) {
	if err := s.cli.Histogram(s.prefix+key, val, append(s.tags, parseTags(tags)...), sampleRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("BumpHistogram failed")
	}
}

// BumpTime starts a timer; End records the duration. Typical usage:
//
//	defer met.BumpTime("settle.time").End()
func (s *service) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		key:   s.prefix + key,
		tags:  append(s.tags, parseTags(tags)...),
		cli:   s.cli,
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
	cli   statsCli
}

func (t *timeTracker) End() {
	dur := float64(time.Since(t.start)) / float64(time.Millisecond)
	if err := t.cli.TimeInMilliseconds(t.key, dur, t.tags, sampleRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": t.key}).Error("BumpTime failed")
	}
}

// parseTags converts alternating key/value pairs to statsd "k:v" tags
func parseTags(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
