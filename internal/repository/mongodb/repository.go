package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// MongoDBRepository stores one daily summary snapshot per day.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects to uri and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return openRepository(ctx, client, dbName)
}

// openRepository verifies client and prepares the collection. The client is
// disconnected when either step fails.
func openRepository(ctx context.Context, client *mongo.Client, dbName string) (*MongoDBRepository, error) {
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := NewFromClient(client, dbName)
	if err := repo.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}
	return repo, nil
}

// ensureIndexes makes date the natural key of the collection.
func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("date_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create daily report index: %w", err)
	}
	return nil
}

// NewFromClient wraps an already connected client.
func NewFromClient(client *mongo.Client, dbName string) *MongoDBRepository {
	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "daily_reports",
	}
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveDailyReport upserts the snapshot of report.Date, so re-running the
// daily close replaces rather than duplicates it.
func (r *MongoDBRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	_, err := r.collection().ReplaceOne(ctx,
		bson.M{"date": report.Date},
		report,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert daily report: %w", err)
	}
	return nil
}

// FindDailyReport returns the snapshot stored for day.
func (r *MongoDBRepository) FindDailyReport(ctx context.Context, day models.Date) (models.DailyReport, error) {
	var report models.DailyReport
	err := r.collection().FindOne(ctx, bson.M{"date": day.Time()}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyReport{}, fmt.Errorf("daily report %s: %w", day, models.ErrNotFound)
	}
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("failed to load daily report %s: %w", day, err)
	}
	return report, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
