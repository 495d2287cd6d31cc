package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

func TestDailyReports(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	day := models.NewDate(2025, time.June, 1)

	mt.Run("save upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		repo := NewFromClient(mt.Client, "hotel")
		report := models.DailyReport{Date: day.Time(), RoomsBooked: 1, TotalIncome: 1500}
		if err := repo.SaveDailyReport(context.Background(), report); err != nil {
			t.Fatalf("SaveDailyReport: %v", err)
		}
	})

	mt.Run("find existing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + ".daily_reports"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "date", Value: day.Time()},
			{Key: "rooms_booked", Value: 2},
			{Key: "profit_or_loss", Value: 2.0},
		}))

		repo := NewFromClient(mt.Client, mt.Coll.Database().Name())
		got, err := repo.FindDailyReport(context.Background(), day)
		if err != nil {
			t.Fatalf("FindDailyReport: %v", err)
		}
		if got.RoomsBooked != 2 || got.ProfitOrLoss != 2 {
			t.Fatalf("unexpected report %+v", got)
		}
	})

	mt.Run("find missing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + ".daily_reports"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewFromClient(mt.Client, mt.Coll.Database().Name())
		_, err := repo.FindDailyReport(context.Background(), day)
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("index on date", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewFromClient(mt.Client, "hotel")
		if err := repo.ensureIndexes(context.Background()); err != nil {
			t.Fatalf("ensureIndexes: %v", err)
		}
	})

	mt.Run("index failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index already exists with different options",
		}))

		repo := NewFromClient(mt.Client, "hotel")
		if err := repo.ensureIndexes(context.Background()); err == nil {
			t.Fatal("expected index creation error")
		}
	})
}

func TestOpenRepositoryDisconnectsOnPingFailure(t *testing.T) {
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100*time.Millisecond))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := openRepository(ctx, client, "hotel"); err == nil {
		t.Fatal("expected ping failure")
	}
	if err := client.Disconnect(ctx); !errors.Is(err, mongo.ErrClientDisconnected) {
		t.Fatalf("client left connected, second disconnect returned %v", err)
	}
}
