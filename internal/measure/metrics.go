////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package measure

// metrics.go contains the metrics object and its methods

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Metrics structure holds the list of measurements taken during a
// benchmark run. The RWMutex prevents two threads from writing to the
// list at the same time.
type Metrics struct {
	Events []Metric
	RunID  string
	sync.RWMutex
}

// Metric structure holds a single measurement, which contains a stage
// tag and a timestamp from when the measurement was taken.
type Metric struct {
	Tag       string
	Timestamp time.Time
}

// Measure creates a new Metric object and appends it to the Metrics's
// event list. The Metric object is created from the specified tag and a
// timestamp created at the time of function call. The timestamp is
// returned.
func (ms *Metrics) Measure(tag string) time.Time {
	metric := Metric{
		Tag:       tag,
		Timestamp: time.Now(),
	}

	ms.Lock()
	ms.Events = append(ms.Events, metric)
	ms.Unlock()

	return metric.Timestamp
}

// GetEvents returns a copy of the Events array.
func (ms *Metrics) GetEvents() []Metric {
	ms.RLock()
	defer ms.RUnlock()
	metricsEvents := make([]Metric, len(ms.Events))

	copy(metricsEvents, ms.Events)

	return metricsEvents
}

// Interval returns the elapsed time between the first event tagged
// startTag and the first later event tagged endTag.
func (ms *Metrics) Interval(startTag, endTag string) (time.Duration, error) {
	ms.RLock()
	defer ms.RUnlock()

	start := -1
	for i, event := range ms.Events {
		if start == -1 {
			if event.Tag == startTag {
				start = i
			}
			continue
		}
		if event.Tag == endTag {
			return event.Timestamp.Sub(ms.Events[start].Timestamp), nil
		}
	}

	if start == -1 {
		return 0, errors.Errorf("no event tagged %q was measured", startTag)
	}
	return 0, errors.Errorf("no event tagged %q follows %q", endTag, startTag)
}
