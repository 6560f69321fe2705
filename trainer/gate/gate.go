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

package gate

import (
	"context"

	"github.com/docker/go-units"

	"github.com/modelgate/modelgate/internal/mgerrors"
	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/trainer/metrics"
	"github.com/modelgate/modelgate/trainer/models"
	"github.com/modelgate/modelgate/trainer/registry"
)

// Candidate is an evaluated model competing for production.
type Candidate struct {
	// ModelName is the candidate identifier.
	ModelName string

	// F1Score is the evaluation metric of the candidate.
	F1Score float64

	// Classifier is the fitted model persisted on promotion.
	Classifier models.Classifier
}

// Decision is the outcome of a gate run.
type Decision struct {
	// Selected is the candidate with the best metric.
	Selected Candidate

	// Baseline is the production entry the candidate was compared with.
	Baseline registry.Entry

	// Approved reports whether the selected candidate was promoted.
	Approved bool

	// Entry is the production entry written on approval.
	Entry *registry.Entry

	// DryRun reports whether writes were skipped.
	DryRun bool
}

// Gate compares candidates with the production baseline and promotes the
// winner.
type Gate struct {
	registry      registry.Store
	artifacts     registry.ArtifactStore
	tiePreference TiePreference
	dryRun        bool
	log           *logger.SugaredLoggerOnWith
}

// Option is a functional option for configuring the gate.
type Option func(g *Gate)

// WithTiePreference sets the candidate selected on equal metrics.
func WithTiePreference(preference TiePreference) Option {
	return func(g *Gate) {
		g.tiePreference = preference
	}
}

// WithDryRun decides without writing.
func WithDryRun(dryRun bool) Option {
	return func(g *Gate) {
		g.dryRun = dryRun
	}
}

// WithRunID tags the gate logs with the run id.
func WithRunID(runID string) Option {
	return func(g *Gate) {
		g.log = logger.WithRun(runID)
	}
}

// New returns a new Gate.
func New(store registry.Store, artifacts registry.ArtifactStore, options ...Option) *Gate {
	g := &Gate{
		registry:      store,
		artifacts:     artifacts,
		tiePreference: DefaultTiePreference,
		log:           logger.With(),
	}

	for _, opt := range options {
		opt(g)
	}

	return g
}

// Run selects the best candidate and promotes it when its metric is at least
// the production metric. The artifact and the registry are written as a pair
// or not at all.
func (g *Gate) Run(ctx context.Context, candidates []Candidate) (*Decision, error) {
	for _, c := range candidates {
		g.log.Infof("candidate %s f1 score: %.4f", c.ModelName, c.F1Score)
	}

	for _, c := range candidates {
		if err := ValidateMetric(c.ModelName, c.F1Score); err != nil {
			return nil, err
		}
		metrics.CandidateF1Gauge.WithLabelValues(c.ModelName).Set(c.F1Score)
	}

	selected, err := Select(candidates, g.tiePreference)
	if err != nil {
		return nil, err
	}
	g.log.Infof("selected %s with f1 score %.4f", selected.ModelName, selected.F1Score)
	metrics.SelectedF1Gauge.Set(selected.F1Score)

	baseline, err := g.registry.Load()
	if err != nil {
		return nil, err
	}

	decision := &Decision{
		Selected: selected,
		Baseline: *baseline,
		DryRun:   g.dryRun,
	}

	if !ShouldPromote(selected.F1Score, baseline.F1Score) {
		g.log.Infof("rejected: %s f1 score %.4f is below production %s %s f1 score %.4f",
			selected.ModelName, selected.F1Score, baseline.ModelName, baseline.Version, baseline.F1Score)
		metrics.RejectionCount.Inc()
		return decision, nil
	}

	entry := &registry.Entry{
		Version:   NextVersion(baseline.Version),
		ModelName: selected.ModelName,
		F1Score:   selected.F1Score,
	}

	if g.dryRun {
		decision.Approved = true
		decision.Entry = entry
		g.log.Infof("approved (dry run): %s would be promoted as %s", selected.ModelName, entry.Version)
		return decision, nil
	}

	if selected.Classifier == nil {
		return nil, mgerrors.Data("candidate %s has no model", selected.ModelName)
	}

	data, err := models.Encode(selected.Classifier)
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "encode "+selected.ModelName)
	}

	// An artifact the server cannot reload must never reach production.
	if _, err := models.Decode(data); err != nil {
		return nil, mgerrors.ExternalLibrary(err, "verify "+selected.ModelName)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.log.Debugf("stage %s artifact of %s", selected.ModelName, units.HumanSize(float64(len(data))))
	if err := g.promote(data, entry); err != nil {
		return nil, err
	}

	decision.Approved = true
	decision.Entry = entry
	metrics.PromotionCount.WithLabelValues(selected.ModelName).Inc()
	g.log.Infof("approved: %s promoted as %s with f1 score %.4f", selected.ModelName, entry.Version, entry.F1Score)
	return decision, nil
}

// promote stages both files, then commits the artifact before the registry.
// A failed registry commit restores the previous artifact.
func (g *Gate) promote(data []byte, entry *registry.Entry) error {
	artifact, err := g.artifacts.Stage(data)
	if err != nil {
		return err
	}
	defer g.closeStaged("artifact", artifact)

	reg, err := g.registry.Stage(entry)
	if err != nil {
		g.rollback("artifact", artifact)
		return err
	}
	defer g.closeStaged("registry", reg)

	if err := artifact.Commit(); err != nil {
		g.rollback("artifact", artifact)
		g.rollback("registry", reg)
		return mgerrors.ExternalLibrary(err, "commit artifact")
	}

	if err := reg.Commit(); err != nil {
		g.rollback("registry", reg)
		g.rollback("artifact", artifact)
		return mgerrors.ExternalLibrary(err, "commit registry")
	}

	return nil
}

func (g *Gate) rollback(name string, staged registry.Staged) {
	if err := staged.Rollback(); err != nil {
		g.log.Errorf("rollback %s failed: %s", name, err.Error())
	}
}

func (g *Gate) closeStaged(name string, staged registry.Staged) {
	if err := staged.Close(); err != nil {
		g.log.Warnf("clean %s staging files failed: %s", name, err.Error())
	}
}
