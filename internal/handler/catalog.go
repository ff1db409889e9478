package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Shivaram-9/HireSphereX-sub000/pkg/response"
)

func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.Catalog.ListCompanies(c.Request.Context())
	if err != nil {
		h.Logger.Sugar().Errorw("list companies", "error", err)
		response.UpstreamError(c, "failed to fetch companies", nil, nil)
		return
	}
	response.OK(c, companies)
}

func (h *Handler) ListPlacementDrives(c *gin.Context) {
	drives, err := h.Catalog.ListPlacementDrives(c.Request.Context())
	if err != nil {
		h.Logger.Sugar().Errorw("list placement drives", "error", err)
		response.UpstreamError(c, "failed to fetch placement drives", nil, nil)
		return
	}
	response.OK(c, drives)
}

func (h *Handler) ListCities(c *gin.Context) {
	cities, err := h.Catalog.ListCities(c.Request.Context())
	if err != nil {
		h.Logger.Sugar().Errorw("list cities", "error", err)
		response.UpstreamError(c, "failed to fetch cities", nil, nil)
		return
	}
	response.OK(c, cities)
}

func (h *Handler) ListPrograms(c *gin.Context) {
	programs, err := h.Catalog.ListPrograms(c.Request.Context())
	if err != nil {
		h.Logger.Sugar().Errorw("list programs", "error", err)
		response.UpstreamError(c, "failed to fetch programs", nil, nil)
		return
	}
	response.OK(c, programs)
}
