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

package helpers

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxURLLength is the maximum allowed URL length for handing off to an
// external handler. This prevents resource exhaustion from malicious QR
// codes with extremely long payloads.
const MaxURLLength = 8192

// ValidateLaunchURL checks that a URI is parseable, within the length limit
// and uses one of the allowed schemes. Scheme comparison is case-insensitive.
func ValidateLaunchURL(rawURL string, schemes []string) error {
	if len(rawURL) > MaxURLLength {
		return fmt.Errorf("URL too long: %d bytes (max %d)", len(rawURL), MaxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	for _, scheme := range schemes {
		if strings.EqualFold(u.Scheme, scheme) {
			return nil
		}
	}

	return fmt.Errorf("URL scheme not allowed: %q", u.Scheme)
}
