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

package viewer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
)

// LaunchHost is the external launch collaborator: a launchability probe
// plus the actual hand-off call.
type LaunchHost interface {
	CanLaunch(ctx context.Context, uri string) bool
	Launch(ctx context.Context, uri string, external bool) error
}

// Chain walks the ordered viewer fallback: native intent, web viewer,
// plain browser. A step is only reached if the previous one reported no
// launchable handler; a launch that was accepted but then errored does not
// fall through.
type Chain struct {
	host LaunchHost
	opts Options
}

func NewChain(host LaunchHost, opts Options) *Chain {
	return &Chain{
		host: host,
		opts: opts.withDefaults(),
	}
}

// Launch hands the payload to the first available viewer route. An empty
// payload is refused before any collaborator call with ErrNoPayload; every
// other failure mode is reported inside the Outcome, never as an error and
// never as a panic.
func (c *Chain) Launch(ctx context.Context, payload string) (Outcome, error) {
	if payload == "" {
		return Outcome{}, ErrNoPayload
	}

	outcome := c.attempt(ctx, payload)
	if outcome.Launched() {
		log.Info().
			Str("via", string(outcome.Via)).
			Str("uri", outcome.URI).
			Msg("viewer launched")
	} else {
		log.Warn().Str("reason", outcome.Reason).Msg("viewer launch failed")
	}
	return outcome, nil
}

func (c *Chain) attempt(ctx context.Context, payload string) (outcome Outcome) {
	// A collaborator misbehaving must surface as a failed outcome, not
	// take down the service.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("panic during viewer launch")
			outcome = failed(fmt.Sprintf("launch panicked: %v", r))
		}
	}()

	intentURI := c.opts.IntentURI(payload)
	if c.host.CanLaunch(ctx, intentURI) {
		if err := c.host.Launch(ctx, intentURI, false); err != nil {
			return failed(err.Error())
		}
		return Outcome{Via: ViaNativeIntent, URI: intentURI}
	}
	log.Debug().Msg("no native intent handler, trying web viewer")

	webURL := c.opts.WebViewerURL(payload)
	if c.host.CanLaunch(ctx, webURL) {
		if err := c.host.Launch(ctx, webURL, true); err != nil {
			return failed(err.Error())
		}
		return Outcome{Via: ViaWebViewer, URI: webURL}
	}
	log.Debug().Msg("no web viewer handler, trying payload directly")

	if _, err := url.Parse(payload); err != nil {
		return failed(fmt.Sprintf("payload is not a launchable URL: %s", err))
	}
	if c.host.CanLaunch(ctx, payload) {
		if err := c.host.Launch(ctx, payload, true); err != nil {
			return failed(err.Error())
		}
		return Outcome{Via: ViaBrowser, URI: payload}
	}

	return failed(ReasonNoHandler)
}
