package persistence

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestDiscoveredItemRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewDiscoveredItemRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO discovered_items (campaign_id, platform_item_id, channel, title, body, author, score, url, item_created_at, keyword_matched, created_at)`)).
		WithArgs(int64(7), "t3_abc", "golang", "Scaling Automation Tools", "", "snoo", 10, "/r/golang/comments/abc", nil, "automation", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	item := &model.DiscoveredItem{
		CampaignID:     7,
		PlatformItemID: "t3_abc",
		Channel:        "golang",
		Title:          "Scaling Automation Tools",
		Author:         "snoo",
		Score:          10,
		URL:            "/r/golang/comments/abc",
		KeywordMatched: "automation",
	}
	err = repository.Insert(context.Background(), item)

	require.NoError(t, err)
	require.Equal(t, int64(11), item.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The (campaign_id, platform_item_id) unique constraint is the dedup
// mechanism, so its violation is an expected outcome, not a failure.
func TestDiscoveredItemRepository_Insert_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewDiscoveredItemRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO discovered_items`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "discovered_items_campaign_id_platform_item_id_key"})

	err = repository.Insert(context.Background(), &model.DiscoveredItem{
		CampaignID:     7,
		PlatformItemID: "t3_abc",
		Channel:        "golang",
		Title:          "seen before",
	})

	require.ErrorIs(t, err, apperrors.ErrDuplicateItem)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscoveredItemRepository_Insert_DatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewDiscoveredItemRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO discovered_items`)).
		WillReturnError(fmt.Errorf("connection reset"))

	err = repository.Insert(context.Background(), &model.DiscoveredItem{
		CampaignID:     7,
		PlatformItemID: "t3_abc",
	})

	require.ErrorIs(t, err, apperrors.ErrPersistence)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscoveredItemRepository_ListByCampaign(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewDiscoveredItemRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, campaign_id, platform_item_id, channel, title, body, author, score, url, item_created_at, keyword_matched, created_at
		 FROM discovered_items WHERE campaign_id=$1 ORDER BY created_at DESC LIMIT $2`)).
		WithArgs(int64(7), 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "platform_item_id", "channel", "title", "body", "author", "score", "url", "item_created_at", "keyword_matched", "created_at"}).
			AddRow(1, 7, "t3_abc", "golang", "first", nil, "snoo", 10, "/r/golang/comments/abc", nil, "automation", now).
			AddRow(2, 7, "t3_def", "golang", "second", "body text", "other", 3, "/r/golang/comments/def", now, nil, now))

	// limit <= 0 falls back to the default page size
	items, err := repository.ListByCampaign(context.Background(), 7, 0)

	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "t3_abc", items[0].PlatformItemID)
	require.Equal(t, "body text", items[1].Body)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscoveredItemRepository_CountByCampaign(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewDiscoveredItemRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM discovered_items WHERE campaign_id=$1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := repository.CountByCampaign(context.Background(), 7)

	require.NoError(t, err)
	require.Equal(t, int64(42), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
