package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	xhttp "github.com/paytrack/ledger-gateway/pkg/http"
	"github.com/paytrack/ledger-gateway/pkg/sqlite"
)

func registerOpsRoutes(r *xhttp.Router, db *sqlite.DB) {
	r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))

	r.GET("/healthz", func(ctx *xhttp.RequestCtx) {
		if err := db.Read(context.Background()).Exec("SELECT 1").Error; err != nil {
			ctx.Error("store unavailable", fasthttp.StatusServiceUnavailable)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})
}
