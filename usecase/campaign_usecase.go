package usecase

import (
	"context"
	"fmt"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/repository"
)

type ICampaignUsecase interface {
	Create(ctx context.Context, req dto.CampaignCreateRequest) (*model.Campaign, error)
	List(ctx context.Context, ownerID string) ([]*model.Campaign, error)
	Get(ctx context.Context, ownerID string, campaignID int64) (*model.Campaign, error)
}

type campaignUsecase struct {
	campaignRepo  repository.ICampaign
	defaultBudget int
}

func NewCampaignUsecase(campaignRepo repository.ICampaign, defaultBudget int) ICampaignUsecase {
	return &campaignUsecase{campaignRepo: campaignRepo, defaultBudget: defaultBudget}
}

func (u *campaignUsecase) Create(ctx context.Context, req dto.CampaignCreateRequest) (*model.Campaign, error) {
	if len(req.Channels) == 0 {
		return nil, fmt.Errorf("%w: at least one channel required", apperrors.ErrMalformedRequest)
	}
	budget := req.Budget
	if budget <= 0 {
		budget = u.defaultBudget
	}
	campaign := &model.Campaign{
		OwnerID:    req.OwnerID,
		Name:       req.Name,
		Platform:   model.ProviderReddit,
		Status:     model.CampaignStatusActive,
		Channels:   req.Channels,
		Keywords:   req.Keywords,
		ItemBudget: budget,
	}
	if err := u.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (u *campaignUsecase) List(ctx context.Context, ownerID string) ([]*model.Campaign, error) {
	return u.campaignRepo.ListByOwner(ctx, ownerID)
}

func (u *campaignUsecase) Get(ctx context.Context, ownerID string, campaignID int64) (*model.Campaign, error) {
	campaign, err := u.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return campaign, nil
}
