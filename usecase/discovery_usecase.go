package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/repository"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/pubsub"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/servicebus"

	"golang.org/x/sync/errgroup"
)

type IDiscoveryUsecase interface {
	Run(ctx context.Context, req dto.DiscoveryRunRequest) (*dto.DiscoveryRunResponse, error)
	ListItems(ctx context.Context, ownerID string, campaignID int64, limit int) ([]*model.DiscoveredItem, error)
	CampaignStats(ctx context.Context, ownerID string, campaignID int64) (*dto.CampaignStatsResponse, error)
	RecentRuns(ctx context.Context, ownerID string, limit int) ([]model.DiscoveryRun, error)
	WithRunEvents(events pubsub.IRunEvents, topic string) IDiscoveryUsecase
	WithRunNotifier(notifier servicebus.IRunNotifier, queue string) IDiscoveryUsecase
}

type discoveryUsecase struct {
	credRepo     repository.ICredential
	campaignRepo repository.ICampaign
	itemRepo     repository.IDiscoveredItem
	runLog       repository.IRunLog
	reddit       repository.IReddit
	runEvents    pubsub.IRunEvents
	runNotifier  servicebus.IRunNotifier
	eventTopic   string
	notifyQueue  string
}

func NewDiscoveryUsecase(
	credRepo repository.ICredential,
	campaignRepo repository.ICampaign,
	itemRepo repository.IDiscoveredItem,
	runLog repository.IRunLog,
	reddit repository.IReddit,
) IDiscoveryUsecase {
	return &discoveryUsecase{
		credRepo:     credRepo,
		campaignRepo: campaignRepo,
		itemRepo:     itemRepo,
		runLog:       runLog,
		reddit:       reddit,
	}
}

// WithRunEvents attaches the optional Pub/Sub publisher.
func (u *discoveryUsecase) WithRunEvents(events pubsub.IRunEvents, topic string) IDiscoveryUsecase {
	u.runEvents = events
	u.eventTopic = topic
	return u
}

// WithRunNotifier attaches the optional Service Bus notifier.
func (u *discoveryUsecase) WithRunNotifier(notifier servicebus.IRunNotifier, queue string) IDiscoveryUsecase {
	u.runNotifier = notifier
	u.notifyQueue = queue
	return u
}

// candidate pairs a matched post with its discovery order so the budget cap
// can break score ties stably.
type candidate struct {
	post    model.RedditPost
	channel string
	keyword string
	order   int
}

// channelFetch is one channel's isolated fetch slot. Slots are filled
// concurrently and merged by channel order, so completion order never
// changes the response.
type channelFetch struct {
	channel string
	posts   []model.RedditPost
	err     error
}

func (u *discoveryUsecase) Run(ctx context.Context, req dto.DiscoveryRunRequest) (*dto.DiscoveryRunResponse, error) {
	campaign, err := u.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != req.OwnerID {
		return nil, apperrors.ErrNotFound
	}

	channels := req.Channels
	if len(channels) == 0 {
		channels = campaign.Channels
	}
	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = campaign.Keywords
	}
	budget := req.Budget
	if budget <= 0 {
		budget = campaign.ItemBudget
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: campaign has no channels", apperrors.ErrMalformedRequest)
	}

	access, err := u.credRepo.Get(ctx, req.OwnerID, model.ProviderReddit, model.CredentialAccessToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoToken
		}
		return nil, err
	}

	quota := perChannelQuota(budget, len(channels))

	// Fan out one fetch per channel. Each slot is isolated: a failed or
	// timed-out channel records its error and the others keep their results.
	fetches := make([]channelFetch, len(channels))
	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range channels {
		i, ch := i, ch
		g.Go(func() error {
			posts, err := u.reddit.HotPosts(gctx, access.Value, ch, quota)
			fetches[i] = channelFetch{channel: ch, posts: posts, err: err}
			return nil
		})
	}
	_ = g.Wait()

	reports := make([]model.ChannelReport, len(channels))
	var candidates []candidate
	order := 0
	for i, f := range fetches {
		report := model.ChannelReport{Channel: f.channel}
		if f.err != nil {
			report.Errors = append(report.Errors, f.err.Error())
			reports[i] = report
			continue
		}
		for _, post := range f.posts {
			report.ItemsChecked++
			keyword, ok := matchKeywords(post, keywords)
			if !ok {
				continue
			}
			report.MatchesFound++
			candidates = append(candidates, candidate{post: post, channel: f.channel, keyword: keyword, order: order})
			order++
		}
		reports[i] = report
	}

	candidates = capCandidates(candidates, budget)

	saved, duplicates := u.persistCandidates(ctx, campaign.ID, candidates, reports)

	executedAt := time.Now().UTC()
	if err := u.campaignRepo.RecordRun(ctx, campaign.ID, int64(saved), executedAt); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to record campaign run")
	}

	run := &model.DiscoveryRun{
		OwnerID:           req.OwnerID,
		CampaignID:        campaign.ID,
		Platform:          campaign.Platform,
		NewRecordsSaved:   saved,
		DuplicatesSkipped: duplicates,
		Reports:           reports,
		ExecutedAt:        executedAt,
	}
	u.emitRun(ctx, run)

	return &dto.DiscoveryRunResponse{
		CampaignID:        campaign.ID,
		NewRecordsSaved:   saved,
		DuplicatesSkipped: duplicates,
		Candidates:        len(candidates),
		Reports:           reports,
	}, nil
}

// perChannelQuota spreads the overall budget across channels, never below 1.
func perChannelQuota(budget, channels int) int {
	if channels <= 0 {
		return 0
	}
	quota := (budget + channels - 1) / channels
	if quota < 1 {
		quota = 1
	}
	return quota
}

// matchKeywords returns the first keyword contained case-insensitively in the
// item's title+body text. An empty keyword list matches everything.
func matchKeywords(post model.RedditPost, keywords []string) (string, bool) {
	if len(keywords) == 0 {
		return "", true
	}
	searchable := strings.ToLower(post.Title + " " + post.SelfText)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(searchable, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}

// capCandidates keeps at most budget candidates, highest provider score
// first, ties broken by discovery order.
func capCandidates(candidates []candidate, budget int) []candidate {
	if budget <= 0 || len(candidates) <= budget {
		return candidates
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].post.Score > candidates[j].post.Score
	})
	return candidates[:budget]
}

// persistCandidates inserts row by row; a duplicate skips that row, a real
// database error is reported against the row's channel and the batch keeps
// going. Earlier successful inserts are never rolled back.
func (u *discoveryUsecase) persistCandidates(ctx context.Context, campaignID int64, candidates []candidate, reports []model.ChannelReport) (saved, duplicates int) {
	reportIdx := make(map[string]int, len(reports))
	for i, r := range reports {
		reportIdx[r.Channel] = i
	}
	for _, cand := range candidates {
		var itemCreated *time.Time
		if cand.post.CreatedUTC > 0 {
			t := time.Unix(int64(cand.post.CreatedUTC), 0).UTC()
			itemCreated = &t
		}
		item := &model.DiscoveredItem{
			CampaignID:     campaignID,
			PlatformItemID: cand.post.FullName,
			Channel:        cand.channel,
			Title:          cand.post.Title,
			Body:           cand.post.SelfText,
			Author:         cand.post.Author,
			Score:          cand.post.Score,
			URL:            cand.post.Permalink,
			KeywordMatched: cand.keyword,
			ItemCreatedAt:  itemCreated,
		}
		err := u.itemRepo.Insert(ctx, item)
		switch {
		case err == nil:
			saved++
		case errors.Is(err, apperrors.ErrDuplicateItem):
			duplicates++
		default:
			if i, ok := reportIdx[cand.channel]; ok {
				reports[i].Errors = append(reports[i].Errors, err.Error())
			}
			logger.GetLogger().WithFields(map[string]interface{}{
				"channel": cand.channel,
				"item":    cand.post.FullName,
				"error":   err,
			}).Error("Failed to persist discovered item")
		}
	}
	return saved, duplicates
}

// emitRun records the run report and fans it out to the optional event
// sinks. All of this is best-effort; a sink failure never fails the run.
func (u *discoveryUsecase) emitRun(ctx context.Context, run *model.DiscoveryRun) {
	if err := u.runLog.Insert(ctx, run); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to write discovery run log")
	}
	payload, err := json.Marshal(run)
	if err != nil {
		return
	}
	if u.runEvents != nil {
		if _, err := u.runEvents.Publish(ctx, u.eventTopic, payload); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to publish run event")
		}
	}
	if u.runNotifier != nil {
		if err := u.runNotifier.SendMessage(u.notifyQueue, payload); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to notify service bus")
		}
	}
}

func (u *discoveryUsecase) ListItems(ctx context.Context, ownerID string, campaignID int64, limit int) ([]*model.DiscoveredItem, error) {
	campaign, err := u.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return u.itemRepo.ListByCampaign(ctx, campaignID, limit)
}

func (u *discoveryUsecase) CampaignStats(ctx context.Context, ownerID string, campaignID int64) (*dto.CampaignStatsResponse, error) {
	campaign, err := u.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	count, err := u.itemRepo.CountByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	stats := &dto.CampaignStatsResponse{
		CampaignID:       campaign.ID,
		TotalItemsPulled: campaign.TotalItemsPulled,
		StoredItems:      count,
	}
	if campaign.LastExecutedAt != nil {
		s := campaign.LastExecutedAt.UTC().Format(time.RFC3339)
		stats.LastExecutedAt = &s
	}
	return stats, nil
}

func (u *discoveryUsecase) RecentRuns(ctx context.Context, ownerID string, limit int) ([]model.DiscoveryRun, error) {
	return u.runLog.Recent(ctx, ownerID, limit)
}
