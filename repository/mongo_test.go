package repository

import (
	"context"
	"testing"

	"startup-registration/common"
	"startup-registration/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func submissionDoc(id primitive.ObjectID, email string, paid bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "email", Value: email},
		{Key: "companyName", Value: "Acme"},
		{Key: "pilotEvidence", Value: ""},
		{Key: "video", Value: ""},
		{Key: "paymentStatus", Value: paid},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert assigns id", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := &models.Submission{Email: "a@x.com"}
		require.NoError(mt, repo.Insert(ctx, s))
		assert.False(mt, s.ID.IsZero())
	})

	mt.Run("insert failure is a persistence error", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "boom",
		}))

		err := repo.Insert(ctx, &models.Submission{Email: "a@x.com"})
		assert.ErrorIs(mt, err, common.ErrPersistence)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			submissionDoc(id, "a@x.com", false)))

		s, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, s.ID)
		assert.Equal(mt, "Acme", s.CompanyName)
		assert.False(mt, s.PaymentStatus)
	})

	mt.Run("find by email not found", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindByEmail(ctx, "missing@x.com")
		assert.ErrorIs(mt, err, common.ErrNotFound)
	})

	mt.Run("find all", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			submissionDoc(primitive.NewObjectID(), "a@x.com", false),
			submissionDoc(primitive.NewObjectID(), "b@x.com", true),
		))

		all, err := repo.FindAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, all, 2)
		assert.Equal(mt, "a@x.com", all[0].Email)
		assert.True(mt, all[1].PaymentStatus)
	})

	mt.Run("find all empty is not nil", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		all, err := repo.FindAll(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, all)
		assert.Empty(mt, all)
	})

	mt.Run("mark paid transitions unpaid submission", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: submissionDoc(id, "a@x.com", false)},
		})

		s, transitioned, err := repo.MarkPaidByEmail(ctx, "a@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, s.ID)
		assert.True(mt, s.PaymentStatus)
		assert.True(mt, transitioned)
	})

	mt.Run("mark paid on paid submission", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: submissionDoc(primitive.NewObjectID(), "a@x.com", true)},
		})

		s, transitioned, err := repo.MarkPaidByEmail(ctx, "a@x.com")
		require.NoError(mt, err)
		assert.True(mt, s.PaymentStatus)
		assert.False(mt, transitioned)
	})

	mt.Run("mark paid not found", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		_, _, err := repo.MarkPaidByEmail(ctx, "missing@x.com")
		assert.ErrorIs(mt, err, common.ErrNotFound)
	})

	mt.Run("count", func(mt *mtest.T) {
		repo := &MongoSubmissionRepository{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int64(45)}}))

		n, err := repo.Count(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, int64(45), n)
	})
}
