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

// Package api serves the local JSON-RPC 2.0 API over websocket and HTTP
// POST. Notifications from the service are broadcast to every connected
// websocket client.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
	"github.com/scenescan/scenescan/pkg/api/methods"
	"github.com/scenescan/scenescan/pkg/api/models"
	"github.com/scenescan/scenescan/pkg/api/models/requests"
	"github.com/scenescan/scenescan/pkg/config"
	"github.com/scenescan/scenescan/pkg/platforms"
	"github.com/scenescan/scenescan/pkg/service/state"
)

var (
	JSONRPCErrorParseError = models.ErrorObject{
		Code:    -32700,
		Message: "Parse error",
	}
	JSONRPCErrorInvalidRequest = models.ErrorObject{
		Code:    -32600,
		Message: "Invalid Request",
	}
	JSONRPCErrorMethodNotFound = models.ErrorObject{
		Code:    -32601,
		Message: "Method not found",
	}
	JSONRPCErrorInvalidParams = models.ErrorObject{
		Code:    -32602,
		Message: "Invalid params",
	}
	JSONRPCErrorServerError = models.ErrorObject{
		Code:    -32000,
		Message: "Server error",
	}
)

var methodMap = map[string]func(requests.RequestEnv) (any, error){
	// permission
	models.MethodPermissionRequest: methods.HandlePermissionRequest,
	// scanning
	models.MethodScanStart: methods.HandleScanStart,
	models.MethodScanStop:  methods.HandleScanStop,
	models.MethodStatus:    methods.HandleStatus,
	// viewer
	models.MethodViewerLaunch: methods.HandleViewerLaunch,
	// settings
	models.MethodSettings:       methods.HandleSettings,
	models.MethodSettingsUpdate: methods.HandleSettingsUpdate,
	models.MethodSettingsReload: methods.HandleSettingsReload,
	// utils
	models.MethodVersion: methods.HandleVersion,
}

func maybeUUID(req models.RequestObject) uuid.UUID {
	if req.ID == nil {
		return uuid.Nil
	}
	return *req.ID
}

func handleRequest(env requests.RequestEnv, req models.RequestObject) (any, error) {
	log.Debug().Interface("request", req).Msg("received request")

	fn, ok := methodMap[strings.ToLower(req.Method)]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s", req.Method)
	}

	if req.ID == nil {
		return nil, fmt.Errorf("missing ID for request: %s", req.Method)
	}

	env.ID = *req.ID
	env.Params = req.Params

	return fn(env)
}

func sendResponse(session *melody.Session, id uuid.UUID, result any) error {
	log.Debug().Interface("result", result).Msg("sending response")

	resp := models.ResponseObject{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("error marshalling response: %w", err)
	}

	return session.Write(data)
}

func sendError(session *melody.Session, id uuid.UUID, errObj models.ErrorObject) error {
	log.Debug().Int("code", errObj.Code).Str("message", errObj.Message).Msg("sending error")

	resp := models.ResponseErrorObject{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &errObj,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("error marshalling error response: %w", err)
	}

	return session.Write(data)
}

func broadcastNotifications(
	st *state.State,
	session *melody.Melody,
	notifications <-chan models.Notification,
) {
	for {
		select {
		case <-st.GetContext().Done():
			log.Debug().Msg("stopping notification broadcaster")
			return
		case notif := <-notifications:
			req := models.RequestObject{
				JSONRPC: "2.0",
				Method:  notif.Method,
				Params:  notif.Params,
			}

			data, err := json.Marshal(req)
			if err != nil {
				log.Error().Err(err).Msg("marshalling notification request")
				continue
			}

			err = session.Broadcast(data)
			if err != nil {
				log.Error().Err(err).Msg("broadcasting notification")
			}
		}
	}
}

func isLocalAddr(remoteAddr string) bool {
	rawIP := strings.SplitN(remoteAddr, ":", 2)
	clientIP := net.ParseIP(rawIP[0])
	return clientIP != nil && clientIP.IsLoopback()
}

func handleWSMessage(
	platform platforms.Platform,
	cfg *config.Instance,
	st *state.State,
) func(session *melody.Session, msg []byte) {
	return func(session *melody.Session, msg []byte) {
		// ping command for heartbeat operation
		if bytes.Equal(msg, []byte("ping")) {
			err := session.Write([]byte("pong"))
			if err != nil {
				log.Error().Err(err).Msg("sending pong")
			}
			return
		}

		if !json.Valid(msg) {
			log.Error().Msg("data not valid json")
			if err := sendError(session, uuid.Nil, JSONRPCErrorParseError); err != nil {
				log.Error().Err(err).Msg("error sending error response")
			}
			return
		}

		// try parse a request first, which has a method field
		var req models.RequestObject
		err := json.Unmarshal(msg, &req)

		if err == nil && req.JSONRPC != "2.0" {
			log.Error().Str("jsonrpc", req.JSONRPC).Msg("unsupported payload version")
			if sendErr := sendError(session, maybeUUID(req), JSONRPCErrorInvalidRequest); sendErr != nil {
				log.Error().Err(sendErr).Msg("error sending error response")
			}
			return
		}

		if err == nil && req.Method != "" {
			if req.ID == nil {
				// request is notification
				log.Info().Interface("req", req).Msg("received notification, ignoring")
				return
			}

			resp, handleErr := handleRequest(requests.RequestEnv{
				Platform: platform,
				Config:   cfg,
				State:    st,
				IsLocal:  isLocalAddr(session.Request.RemoteAddr),
			}, req)
			if handleErr != nil {
				errObj := JSONRPCErrorServerError
				errObj.Message = handleErr.Error()
				if sendErr := sendError(session, *req.ID, errObj); sendErr != nil {
					log.Error().Err(sendErr).Msg("error sending error response")
				}
				return
			}

			if sendErr := sendResponse(session, *req.ID, resp); sendErr != nil {
				log.Error().Err(sendErr).Msg("error sending response")
			}
			return
		}

		// otherwise try parse a response, which has an id field
		var resp models.ResponseObject
		err = json.Unmarshal(msg, &resp)
		if err == nil && resp.ID != uuid.Nil {
			log.Debug().Interface("response", resp).Msg("received response")
			return
		}

		log.Error().Err(err).Msg("message does not match known types")
		if sendErr := sendError(session, uuid.Nil, JSONRPCErrorInvalidRequest); sendErr != nil {
			log.Error().Err(sendErr).Msg("error sending error response")
		}
	}
}

// handlePost services a single JSON-RPC request over plain HTTP for
// clients that do not want to hold a websocket open.
func handlePost(
	platform platforms.Platform,
	cfg *config.Instance,
	st *state.State,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "error reading request body", http.StatusInternalServerError)
			return
		}

		writeResp := func(v any) {
			w.Header().Set("Content-Type", "application/json")
			if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
				log.Error().Err(encErr).Msg("error writing response")
			}
		}

		var req models.RequestObject
		if err := json.Unmarshal(body, &req); err != nil || req.JSONRPC != "2.0" || req.Method == "" {
			writeResp(models.ResponseErrorObject{
				JSONRPC: "2.0",
				ID:      maybeUUID(req),
				Error:   &JSONRPCErrorInvalidRequest,
			})
			return
		}

		resp, err := handleRequest(requests.RequestEnv{
			Platform: platform,
			Config:   cfg,
			State:    st,
			IsLocal:  isLocalAddr(r.RemoteAddr),
		}, req)
		if err != nil {
			errObj := JSONRPCErrorServerError
			errObj.Message = err.Error()
			writeResp(models.ResponseErrorObject{
				JSONRPC: "2.0",
				ID:      maybeUUID(req),
				Error:   &errObj,
			})
			return
		}

		writeResp(models.ResponseObject{
			JSONRPC: "2.0",
			ID:      maybeUUID(req),
			Result:  resp,
		})
	}
}

// Start runs the API server. It blocks until the listener fails or the
// process exits.
func Start(
	platform platforms.Platform,
	cfg *config.Instance,
	st *state.State,
	notifications <-chan models.Notification,
) {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(middleware.Timeout(config.APIRequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{},
	}))

	session := melody.New()
	session.Upgrader.CheckOrigin = func(_ *http.Request) bool { return true }
	go broadcastNotifications(st, session, notifications)

	wsHandler := func(w http.ResponseWriter, r *http.Request) {
		err := session.HandleRequest(w, r)
		if err != nil {
			log.Error().Err(err).Msg("handling websocket request")
		}
	}

	r.Get("/api", wsHandler)
	r.Get("/api/v0.1", wsHandler)
	r.Post("/api/v0.1", handlePost(platform, cfg, st))

	session.HandleMessage(handleWSMessage(platform, cfg, st))

	err := http.ListenAndServe(cfg.APIListen(), r)
	if err != nil {
		log.Error().Err(err).Msg("error starting http server")
	}
}
