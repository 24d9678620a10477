package http

import (
	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ICampaignHandler interface {
	Dispatch(c *gin.Context)
}

type campaignHandler struct {
	campaignUsecase usecase.ICampaignUsecase
}

func NewCampaignHandler(campaignUsecase usecase.ICampaignUsecase) ICampaignHandler {
	return &campaignHandler{campaignUsecase: campaignUsecase}
}

// Dispatch handles POST /api/campaigns.
func (h *campaignHandler) Dispatch(c *gin.Context) {
	var probe dto.ActionProbe
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		respondMalformed(c, err)
		return
	}

	switch probe.Action {
	case dto.ActionCampaignCreate:
		var req dto.CampaignCreateRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		campaign, err := h.campaignUsecase.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"campaign": campaign})

	case dto.ActionCampaignList:
		var req dto.CampaignListRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		campaigns, err := h.campaignUsecase.List(c.Request.Context(), req.OwnerID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"campaigns": campaigns, "count": len(campaigns)})

	case dto.ActionCampaignGet:
		var req dto.CampaignGetRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		campaign, err := h.campaignUsecase.Get(c.Request.Context(), req.OwnerID, req.CampaignID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"campaign": campaign})

	default:
		respondUnknownAction(c, probe.Action)
	}
}
