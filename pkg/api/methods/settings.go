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
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/models/requests"
	"github.com/scenescan/scenescan/pkg/config"
)

func HandleSettings(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings request")

	return models.SettingsResponse{
		ViewerHost:   env.Config.ViewerHost(),
		ViewerMode:   env.Config.ViewerMode(),
		ViewerTitle:  env.Config.ViewerTitle(),
		APIPort:      env.Config.APIPort(),
		DebugLogging: env.Config.DebugLogging(),
	}, nil
}

func HandleSettingsReload(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings reload request")

	err := env.Config.Load()
	if err != nil {
		log.Error().Err(err).Msg("error loading settings")
		return nil, errors.New("error loading settings")
	}

	return NoContent{}, nil
}

func HandleSettingsUpdate(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings update request")

	if len(env.Params) == 0 {
		return nil, ErrMissingParams
	}

	var params models.UpdateSettingsParams
	err := json.Unmarshal(env.Params, &params)
	if err != nil {
		return nil, ErrInvalidParams
	}

	if params.DebugLogging != nil {
		log.Info().Bool("debugLogging", *params.DebugLogging).Msg("update")
		env.Config.SetDebugLogging(*params.DebugLogging)
	}

	if params.ViewerMode != nil {
		log.Info().Str("viewerMode", *params.ViewerMode).Msg("update")
		switch *params.ViewerMode {
		case "":
			env.Config.SetViewerMode(config.DefaultViewerMode)
		case config.ViewerModeARPreferred, config.ViewerModeAROnly,
			config.ViewerMode3DPreferred, config.ViewerMode3DOnly:
			env.Config.SetViewerMode(*params.ViewerMode)
		default:
			return nil, ErrInvalidParams
		}
	}

	err = env.Config.Save()
	if err != nil {
		log.Error().Err(err).Msg("error saving settings")
		return nil, errors.New("error saving settings")
	}

	return NoContent{}, nil
}
