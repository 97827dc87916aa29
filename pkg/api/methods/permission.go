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
)

func HandlePermissionRequest(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received permission request")

	state, err := env.State.Gate().Request(env.State.GetContext())
	if err != nil {
		log.Error().Err(err).Msg("error requesting camera permission")
		return nil, errors.New("error requesting camera permission")
	}

	return models.PermissionParams{State: state.String()}, nil
}
