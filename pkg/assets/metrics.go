// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package assets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace used for Prometheus metrics.
const MetricNamespace = "assetd"
const MetricSubsystem = "assets"

var (
	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "responses_total",
			Help:      "The number of responses sent, by status code.",
		},
		[]string{"code"},
	)
	bytesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "bytes_served_total",
			Help:      "The number of response body bytes written to clients.",
		},
	)
	pathRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "path_rejected_total",
			Help:      "The number of requests whose path resolved outside the public directory.",
		},
	)
	responseFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "responses_failed_total",
			Help:      "The number of responses that failed to send to the client.",
		},
	)
)
