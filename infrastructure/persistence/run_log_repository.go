package persistence

import (
	"context"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const runLogCollection = "discovery_runs"

// RunLogRepository writes per-run scan reports to Mongo. A nil client
// disables it; writes then become no-ops so a missing Mongo never fails a
// discovery run.
type RunLogRepository struct {
	client *mongo.Client
	dbName string
}

func NewRunLogRepository(client *mongo.Client, dbName string) *RunLogRepository {
	return &RunLogRepository{client: client, dbName: dbName}
}

func (r *RunLogRepository) Insert(ctx context.Context, run *model.DiscoveryRun) error {
	if r.client == nil {
		return nil
	}
	_, err := r.client.Database(r.dbName).Collection(runLogCollection).InsertOne(ctx, run)
	return err
}

func (r *RunLogRepository) Recent(ctx context.Context, ownerID string, limit int) ([]model.DiscoveryRun, error) {
	if r.client == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "executed_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.client.Database(r.dbName).Collection(runLogCollection).
		Find(ctx, bson.D{{Key: "owner_id", Value: ownerID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var runs []model.DiscoveryRun
	if err := cur.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
