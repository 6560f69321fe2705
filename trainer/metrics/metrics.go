/*
 *     Copyright 2026 The Modelgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/modelgate/modelgate/trainer/config"
	"github.com/modelgate/modelgate/version"
)

const (
	// Namespace is the metrics namespace of every binary.
	Namespace = "modelgate"

	// Subsystem is the metrics subsystem of the trainer.
	Subsystem = "trainer"
)

// Registry gathers the trainer metrics, it is isolated from the default
// registry so a push only carries run metrics.
var Registry = prometheus.NewRegistry()

// Variables declared for metrics.
var (
	RunCount = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "run_total",
		Help:      "Counter of the number of the gate runs.",
	})

	RunFailureCount = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "run_failure_total",
		Help:      "Counter of the number of failed gate runs.",
	}, []string{"error"})

	TrainingCount = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "training_total",
		Help:      "Counter of the number of the candidate trainings.",
	}, []string{"model_name"})

	TrainingFailureCount = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "training_failure_total",
		Help:      "Counter of the number of failed candidate trainings.",
	}, []string{"model_name"})

	CandidateF1Gauge = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "candidate_f1_score",
		Help:      "F1 score of the candidate in the last run.",
	}, []string{"model_name"})

	SelectedF1Gauge = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "selected_f1_score",
		Help:      "F1 score of the selected candidate in the last run.",
	})

	PromotionCount = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "promotion_total",
		Help:      "Counter of the number of approved promotions.",
	}, []string{"model_name"})

	RejectionCount = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "rejection_total",
		Help:      "Counter of the number of rejected promotions.",
	})

	VersionGauge = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version"})
)

// Push sends the gathered metrics to the configured pushgateway.
func Push(ctx context.Context, cfg *config.MetricsConfig) error {
	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion).Set(1)

	if err := ctx.Err(); err != nil {
		return err
	}

	return push.New(cfg.PushGateway, cfg.Job).
		Gatherer(Registry).
		Push()
}
