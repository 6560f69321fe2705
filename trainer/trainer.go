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

package trainer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/modelgate/modelgate/internal/mgerrors"
	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/pkg/mgpath"
	"github.com/modelgate/modelgate/trainer/config"
	"github.com/modelgate/modelgate/trainer/dataset"
	"github.com/modelgate/modelgate/trainer/gate"
	"github.com/modelgate/modelgate/trainer/metrics"
	"github.com/modelgate/modelgate/trainer/models"
	"github.com/modelgate/modelgate/trainer/registry"
	"github.com/modelgate/modelgate/trainer/storage"
	"github.com/modelgate/modelgate/trainer/training"
)

type Trainer struct {
	// Trainer configuration.
	config *config.Config

	// Project paths.
	path mgpath.Mgpath

	// Run record storage.
	storage storage.Storage

	// Candidate training.
	training training.Training

	// Production registry.
	registry registry.Store

	// Production artifact.
	artifacts registry.ArtifactStore
}

// New returns a new Trainer.
func New(cfg *config.Config, d mgpath.Mgpath) (*Trainer, error) {
	return &Trainer{
		config:    cfg,
		path:      d,
		storage:   storage.New(d.DataDir()),
		training:  training.New(&cfg.Models),
		registry:  registry.New(d.RegistryPath()),
		artifacts: registry.NewArtifactStore(d.ArtifactPath()),
	}, nil
}

// Run trains the candidates and runs the gate once, every run is recorded
// whatever its outcome.
func (t *Trainer) Run(ctx context.Context) (*gate.Decision, error) {
	run := storage.Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		DryRun:    t.config.Gate.DryRun,
	}
	log := logger.WithRun(run.ID)
	log.Infof("run started with dataset %s", t.config.Dataset.Path)
	metrics.RunCount.Inc()

	decision, err := t.run(ctx, &run)
	if err != nil {
		code, _ := mgerrors.CodeOf(err)
		metrics.RunFailureCount.WithLabelValues(code.String()).Inc()
		log.Errorf("run failed: %s", err.Error())

		run.Outcome = storage.OutcomeFailed
		run.Error = err.Error()
	} else {
		run.SelectedModel = decision.Selected.ModelName
		run.BaselineF1 = decision.Baseline.F1Score
		run.Version = decision.Baseline.Version
		run.Outcome = storage.OutcomeRejected
		if decision.Approved {
			run.Outcome = storage.OutcomeApproved
			run.Version = decision.Entry.Version
		}
	}

	if err := t.storage.CreateRun(run); err != nil {
		log.Warnf("record run failed: %s", err.Error())
	}

	if t.config.Metrics.Enable {
		if err := metrics.Push(ctx, &t.config.Metrics); err != nil {
			log.Warnf("push metrics failed: %s", err.Error())
		}
	}

	return decision, err
}

func (t *Trainer) run(ctx context.Context, run *storage.Run) (*gate.Decision, error) {
	preference, err := gate.ParseTiePreference(t.config.Gate.TiePreference)
	if err != nil {
		return nil, err
	}

	unlock, err := registry.Lock(ctx, t.path.LockPath())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.WithRun(run.ID).Warnf("unlock failed: %s", err.Error())
		}
	}()

	ds, err := dataset.LoadFile(t.config.Dataset.Path,
		dataset.WithHeader(t.config.Dataset.Header),
		dataset.WithTestPercent(t.config.Dataset.TestPercent),
		dataset.WithSeed(t.config.Dataset.Seed),
	)
	if err != nil {
		return nil, err
	}

	results, err := t.training.Train(ctx, ds)
	if err != nil {
		return nil, err
	}

	candidates := make([]gate.Candidate, 0, len(results))
	for _, result := range results {
		switch result.ModelName {
		case models.LogisticRegressionName:
			run.LogisticRegressionF1 = result.F1Score
		case models.RandomForestName:
			run.RandomForestF1 = result.F1Score
		}

		candidates = append(candidates, gate.Candidate{
			ModelName:  result.ModelName,
			F1Score:    result.F1Score,
			Classifier: result.Classifier,
		})
	}

	g := gate.New(t.registry, t.artifacts,
		gate.WithTiePreference(preference),
		gate.WithDryRun(t.config.Gate.DryRun),
		gate.WithRunID(run.ID),
	)

	return g.Run(ctx, candidates)
}
