// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"errors"

	"github.com/gogama/restkit"
	"github.com/gogama/restkit/apierr"
	"github.com/gogama/restkit/request"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type handler struct {
	logger *zap.Logger
}

// NewHandler returns an event handler which logs calls to logger.
//
// BeforeSend is logged at debug level with the method, path and
// redacted request headers. AfterCall is logged at debug level when the
// call succeeds, at warn level when the call ends with an unsuccessful
// response and at error level when the transport failed. Other events
// are ignored.
//
// A nil logger is replaced with a no-op logger.
func NewHandler(logger *zap.Logger) restkit.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &handler{logger: logger}
}

func (h *handler) Handle(evt restkit.Event, e *request.Execution) {
	switch evt {
	case restkit.BeforeSend:
		if ce := h.logger.Check(zapcore.DebugLevel, "sending request"); ce != nil {
			ce.Write(
				zap.String("client", e.Client),
				zap.String("method", e.Plan.Method),
				zap.String("path", e.Plan.Path),
				zap.Any("header", RedactHeader(e.Plan.Header)),
			)
		}
	case restkit.AfterCall:
		h.afterCall(e)
	}
}

func (h *handler) afterCall(e *request.Execution) {
	fields := []zap.Field{
		zap.String("client", e.Client),
		zap.String("method", e.Plan.Method),
		zap.String("path", e.Plan.Path),
		zap.Int("status", e.StatusCode()),
		zap.Duration("duration", e.Duration()),
	}

	if e.Err == nil {
		h.logger.Debug("call succeeded", fields...)
		return
	}

	var ae *apierr.Error
	if errors.As(e.Err, &ae) {
		fields = append(fields, zap.Stringer("kind", ae.Kind))
		if ae.Kind.IsResponseKind() {
			h.logger.Warn("call failed", append(fields, zap.String("error", ae.Message))...)
			return
		}
	}
	h.logger.Error("call failed", append(fields, zap.Error(e.Err))...)
}
