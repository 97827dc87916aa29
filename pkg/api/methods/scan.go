// Scenescan
// Copyright (c) 2026 The Scenescan Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Scenescan.
//
// Scenescan is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Scenescan is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Scenescan.  If not, see <http://www.gnu.org/licenses/>.

package methods

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/models/requests"
	"github.com/scenescan/scenescan/pkg/service/session"
)

func HandleScanStart(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received scan start request")

	sess := env.State.Session()
	if sess == nil {
		return nil, errors.New("scan session not ready")
	}

	err := sess.Start()
	if errors.Is(err, session.ErrPermissionRequired) {
		return nil, err
	} else if err != nil {
		log.Error().Err(err).Msg("error starting scan")
		return nil, errors.New("error starting scan")
	}

	return NoContent{}, nil
}

func HandleScanStop(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received scan stop request")

	sess := env.State.Session()
	if sess == nil {
		return nil, errors.New("scan session not ready")
	}

	sess.Stop()
	return NoContent{}, nil
}

func HandleStatus(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received status request")

	resp := models.StatusResponse{
		Permission: env.State.Gate().Current().String(),
		Scanners:   make([]models.ScannerResponse, 0),
	}

	if sess := env.State.Session(); sess != nil {
		resp.Scanning = sess.Active()
		if payload, ok := sess.Payload(); ok {
			resp.LastPayload = payload
		}
	}

	for _, sc := range env.State.ListScanners() {
		resp.Scanners = append(resp.Scanners, models.ScannerResponse{
			Driver:    sc.Metadata().ID,
			Path:      sc.Path(),
			Connected: sc.Connected(),
		})
	}

	return resp, nil
}
