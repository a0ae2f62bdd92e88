// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cactus/mlog"
)

// dateStamp caches the current time formatted for an HTTP Date header,
// refreshed once a second.
type dateStamp struct {
	value atomic.Pointer[string]
	once  sync.Once
}

func (d *dateStamp) String() string {
	stamp := d.value.Load()
	if stamp == nil {
		mlog.Print("got a nil date stamp. Trying to recover...")
		return d.Update()
	}
	return *stamp
}

// Update stores and returns a freshly formatted stamp.
func (d *dateStamp) Update() string {
	s := time.Now().UTC().Format(http.TimeFormat)
	d.value.Store(&s)
	return s
}

func (d *dateStamp) start(interval time.Duration) {
	d.once.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for range ticker.C {
				d.Update()
			}
		}()
	})
}

func newDateStamp() *dateStamp {
	d := &dateStamp{}
	d.Update()
	d.start(1 * time.Second)
	return d
}

var formattedDate = newDateStamp()
