package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/api/response"
	"github.com/stagebooks-dev/stagebooks/internal/valuation"
)

func (h *Handler) DCF(w http.ResponseWriter, r *http.Request) {
	var in valuation.DCFInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	res, err := valuation.DCF(in)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

type ccaResponse struct {
	valuation.CCAResult
	Average decimal.Decimal `json:"average"`
}

func (h *Handler) CCA(w http.ResponseWriter, r *http.Request) {
	var in valuation.CCAInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	res, err := valuation.CCA(in)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, ccaResponse{CCAResult: res, Average: res.Average()})
}

func (h *Handler) Asset(w http.ResponseWriter, r *http.Request) {
	var in valuation.AssetInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	res, err := valuation.AssetBased(in)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, res)
}

func (h *Handler) DDM(w http.ResponseWriter, r *http.Request) {
	var in valuation.DDMInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	price, err := valuation.DDM(in)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]decimal.Decimal{"sharePrice": price})
}

type weightedRequest struct {
	Items []valuation.WeightedItem `json:"items"`
}

func (h *Handler) Weighted(w http.ResponseWriter, r *http.Request) {
	var req weightedRequest
	if !decode(w, r, &req) {
		return
	}
	response.Success(w, valuation.Report(req.Items, h.now()))
}
