package routes

import (
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"okinoko_presale/contract"
	"okinoko_presale/http_pack/helpers"
	"okinoko_presale/sdk"
)

// PresaleReader is the read-only slice of the sale the API exposes.
type PresaleReader interface {
	GetPresaleInfo() (contract.PresaleInfo, error)
	GetUserInfo(addr sdk.Address) (contract.UserInfo, error)
	GetUserDeposits(addr sdk.Address) (uint64, error)
	IsWhitelisted(addr sdk.Address) (bool, error)
}

type Routes struct {
	Presale PresaleReader
	Log     logrus.FieldLogger
}

func (rt *Routes) fail(ctx *fasthttp.RequestCtx, err error) {
	rt.Log.WithError(err).WithField("path", string(ctx.Path())).Error("query failed")
	helpers.WriteErr(ctx, fasthttp.StatusInternalServerError, "Failed to read presale state", contract.CodeOf(err))
}

// addressParam pulls {address} out of the path and rejects anything that is not a known scheme.
func addressParam(ctx *fasthttp.RequestCtx) (sdk.Address, bool) {
	raw, ok := ctx.UserValue("address").(string)
	addr := sdk.Address(raw)
	if !ok || !addr.IsValid() {
		helpers.WriteErr(ctx, fasthttp.StatusBadRequest, "Invalid address", contract.ErrInvalidAddress.Code)
		return "", false
	}
	return addr, true
}

func (rt *Routes) GetPresaleInfo(ctx *fasthttp.RequestCtx) {
	info, err := rt.Presale.GetPresaleInfo()
	if err != nil {
		rt.fail(ctx, err)
		return
	}
	helpers.WriteJSON(ctx, fasthttp.StatusOK, info)
}

func (rt *Routes) GetUserInfo(ctx *fasthttp.RequestCtx) {
	addr, ok := addressParam(ctx)
	if !ok {
		return
	}
	info, err := rt.Presale.GetUserInfo(addr)
	if err != nil {
		rt.fail(ctx, err)
		return
	}
	helpers.WriteJSON(ctx, fasthttp.StatusOK, info)
}

func (rt *Routes) GetUserDeposits(ctx *fasthttp.RequestCtx) {
	addr, ok := addressParam(ctx)
	if !ok {
		return
	}
	deposit, err := rt.Presale.GetUserDeposits(addr)
	if err != nil {
		rt.fail(ctx, err)
		return
	}
	helpers.WriteJSON(ctx, fasthttp.StatusOK, map[string]any{
		"address": addr,
		"deposit": deposit,
	})
}

func (rt *Routes) IsWhitelisted(ctx *fasthttp.RequestCtx) {
	addr, ok := addressParam(ctx)
	if !ok {
		return
	}
	listed, err := rt.Presale.IsWhitelisted(addr)
	if err != nil {
		rt.fail(ctx, err)
		return
	}
	helpers.WriteJSON(ctx, fasthttp.StatusOK, map[string]any{
		"address":     addr,
		"whitelisted": listed,
	})
}
