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
	"net/url"
	"strings"
)

// encodeComponent percent-encodes a URI component using %20 for spaces.
// Android intent URIs reject the +-for-space form inside the fragmentless
// query section, so url.QueryEscape alone is not enough.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// IntentURI builds the Android intent deep link for the native scene
// viewer, scoped to the configured handler package.
func (o Options) IntentURI(payload string) string {
	o = o.withDefaults()
	var b strings.Builder
	b.WriteString("intent://")
	b.WriteString(o.Host)
	b.WriteString("/scene-viewer/1.0")
	b.WriteString("?file=")
	b.WriteString(encodeComponent(payload))
	b.WriteString("&mode=")
	b.WriteString(encodeComponent(o.Mode))
	b.WriteString("&title=")
	b.WriteString(encodeComponent(o.Title))
	b.WriteString("#Intent;scheme=https;package=")
	b.WriteString(o.Package)
	b.WriteString(";action=android.intent.action.VIEW;end;")
	return b.String()
}

// WebViewerURL builds the plain https viewer URL carrying the same payload,
// mode and title as the native intent.
func (o Options) WebViewerURL(payload string) string {
	o = o.withDefaults()
	q := url.Values{}
	q.Set("file", payload)
	q.Set("mode", o.Mode)
	q.Set("title", o.Title)
	u := url.URL{
		Scheme:   "https",
		Host:     o.Host,
		Path:     "/scene-viewer/1.0",
		RawQuery: q.Encode(),
	}
	return u.String()
}
