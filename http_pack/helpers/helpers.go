package helpers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

type errResponse struct {
	Err  string `json:"err"`
	Code int    `json:"code,omitempty"`
}

func setJSONHeaders(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.SetContentType("application/json")
}

// WriteErr answers with {"err": msg}; code is the contract error code when there is one.
func WriteErr(ctx *fasthttp.RequestCtx, status int, msg string, code int) {
	setJSONHeaders(ctx)
	ctx.SetStatusCode(status)
	if payload, err := json.Marshal(errResponse{Err: msg, Code: code}); err == nil {
		ctx.Write(payload)
		return
	}
	ctx.Write([]byte(`{"err":"marshal failed"}`))
}

func WriteJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	setJSONHeaders(ctx)
	data, err := json.Marshal(v)
	if err != nil {
		WriteErr(ctx, fasthttp.StatusInternalServerError, "Failed to marshal response", 0)
		return
	}
	ctx.SetStatusCode(status)
	ctx.Write(data)
}
