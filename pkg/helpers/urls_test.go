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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLaunchURL(t *testing.T) {
	t.Parallel()

	schemes := []string{"http", "https", "intent"}

	assert.NoError(t, ValidateLaunchURL("https://example.com/model.glb", schemes))
	assert.NoError(t, ValidateLaunchURL("intent://arvr.google.com/scene-viewer/1.0", schemes))

	// scheme comparison is case-insensitive
	assert.NoError(t, ValidateLaunchURL("HTTPS://example.com/model.glb", schemes))

	assert.Error(t, ValidateLaunchURL("file:///etc/passwd", schemes))
	assert.Error(t, ValidateLaunchURL("javascript:alert(1)", schemes))
	assert.Error(t, ValidateLaunchURL("://bad", schemes))
}

func TestValidateLaunchURLLength(t *testing.T) {
	t.Parallel()

	long := "https://example.com/" + strings.Repeat("a", MaxURLLength)
	err := ValidateLaunchURL(long, []string{"https"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestContains(t *testing.T) {
	t.Parallel()

	assert.True(t, Contains([]string{"file", "camera"}, "file"))
	assert.False(t, Contains([]string{"file"}, "nfc"))
	assert.False(t, Contains(nil, "file"))
}
