package order

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is the collection orders live in.
const MongoCollection = "orders"

// MongoRepository keeps each order as one document with embedded items and address.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Create(ctx context.Context, o Order) (Order, error) {
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return Order{}, errors.Wrap(err, "insert order")
	}
	return o, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, errors.Wrap(err, "find order")
	}
	o.Status = NormalizeStatus(string(o.Status))
	return o, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": at}},
	)
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}
	defer cur.Close(ctx)

	out := make([]Order, 0)
	for cur.Next(ctx) {
		var o Order
		if err := cur.Decode(&o); err != nil {
			return nil, errors.Wrap(err, "decode order")
		}
		o.Status = NormalizeStatus(string(o.Status))
		out = append(out, o)
	}
	return out, cur.Err()
}
