package http

import (
	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type IDiscoveryHandler interface {
	Dispatch(c *gin.Context)
}

type discoveryHandler struct {
	discoveryUsecase usecase.IDiscoveryUsecase
}

func NewDiscoveryHandler(discoveryUsecase usecase.IDiscoveryUsecase) IDiscoveryHandler {
	return &discoveryHandler{discoveryUsecase: discoveryUsecase}
}

// Dispatch handles POST /api/discovery.
func (h *discoveryHandler) Dispatch(c *gin.Context) {
	var probe dto.ActionProbe
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		respondMalformed(c, err)
		return
	}

	switch probe.Action {
	case dto.ActionRunDiscovery:
		var req dto.DiscoveryRunRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		out, err := h.discoveryUsecase.Run(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{
			"campaign_id":        out.CampaignID,
			"new_records_saved":  out.NewRecordsSaved,
			"duplicates_skipped": out.DuplicatesSkipped,
			"candidates":         out.Candidates,
			"reports":            out.Reports,
		})

	case dto.ActionListItems:
		var req dto.ListItemsRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		items, err := h.discoveryUsecase.ListItems(c.Request.Context(), req.OwnerID, req.CampaignID, req.Limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"items": items, "count": len(items)})

	case dto.ActionCampaignStats:
		var req dto.CampaignStatsRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		stats, err := h.discoveryUsecase.CampaignStats(c.Request.Context(), req.OwnerID, req.CampaignID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"stats": stats})

	case dto.ActionRecentRuns:
		var req dto.RecentRunsRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		runs, err := h.discoveryUsecase.RecentRuns(c.Request.Context(), req.OwnerID, req.Limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"runs": runs})

	default:
		respondUnknownAction(c, probe.Action)
	}
}
