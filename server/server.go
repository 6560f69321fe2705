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


package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/docker/go-units"

	"github.com/modelgate/modelgate/internal/mgerrors"
	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/pkg/mgpath"
	"github.com/modelgate/modelgate/server/config"
	"github.com/modelgate/modelgate/server/router"
	"github.com/modelgate/modelgate/server/service"
	"github.com/modelgate/modelgate/trainer/models"
	"github.com/modelgate/modelgate/trainer/registry"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Prediction service.
	service service.Service

	// REST server.
	restServer *http.Server
}

// New loads the production artifact and returns a new Server.
func New(cfg *config.Config, d mgpath.Mgpath) (*Server, error) {
	maxSize, err := cfg.Storage.MaxArtifactBytes()
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "parse maxArtifactSize")
	}

	// Load production model.
	data, err := registry.NewArtifactStore(d.ArtifactPath(), registry.WithMaxSize(maxSize)).Load()
	if err != nil {
		return nil, err
	}

	classifier, err := models.Decode(data)
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "decode artifact "+d.ArtifactPath())
	}

	// Initialize REST server.
	svc := service.New(classifier)
	logger.WithModel(svc.ModelName()).With("features", svc.NumFeatures()).
		Infof("loaded production model of %s from %s", units.HumanSize(float64(len(data))), d.ArtifactPath())

	restServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router.Init(cfg, svc),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		service:    svc,
		restServer: restServer,
	}, nil
}

// Serve blocks until the server is stopped.
func (s *Server) Serve() error {
	lis, err := net.Listen("tcp", s.restServer.Addr)
	if err != nil {
		return err
	}

	logger.Infof("started rest server at %s", lis.Addr().String())
	if err := s.restServer.Serve(lis); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		logger.Errorf("rest server closed unexpect: %v", err)
		return err
	}

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.restServer.Shutdown(ctx); err != nil {
		logger.Errorf("rest server failed to stop: %v", err)
	}
	logger.Info("rest server closed under request")
}
