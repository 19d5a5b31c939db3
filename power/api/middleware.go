// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
)

// AccessLogMiddleware logs every request at debug level and every non-2xx
// response at warning level.
func AccessLogMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debugf("API request - %s %s", r.Method, r.URL)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := http.StatusOK
			if ww.Status() != 0 {
				status = ww.Status()
			}

			if status/100 != 2 {
				log.Warnf("API response - %s %s %d", r.Method, r.URL, status)
			} else {
				log.Debugf("API response - %s %s %d", r.Method, r.URL, status)
			}
		})
	}
}
