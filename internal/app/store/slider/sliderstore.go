// internal/app/store/slider/sliderstore.go
package sliderstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/ordering"
	"github.com/dalemusser/estatehub/internal/app/system/txn"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ReorderScope serialises writes to the order field of slider images.
const ReorderScope = "slider_images"

var locks = ordering.NewLocker()

var sortOrder = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

type Store struct {
	db  *mongo.Database
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("slider_images"), log: zap.L()}
}

// List returns slider images in display order.
func (s *Store) List(ctx context.Context, includeInactive bool) ([]models.SliderImage, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["is_active"] = true
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(sortOrder))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.SliderImage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.SliderImage, error) {
	var img models.SliderImage
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&img); err != nil {
		return models.SliderImage{}, err
	}
	return img, nil
}

// Create inserts img, appending it when order is nil.
func (s *Store) Create(ctx context.Context, img models.SliderImage, order *int) (models.SliderImage, error) {
	unlock := locks.Lock(ReorderScope)
	defer unlock()

	if order != nil {
		img.Order = *order
	} else {
		var top models.SliderImage
		err := s.c.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})).Decode(&top)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			img.Order = 0
		case err != nil:
			return models.SliderImage{}, err
		default:
			img.Order = top.Order + 1
		}
	}

	now := time.Now().UTC()
	img.ID = primitive.NewObjectID()
	img.CreatedAt = now
	img.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, img); err != nil {
		return models.SliderImage{}, err
	}
	return img, nil
}

// Update applies set and returns the updated image or mongo.ErrNoDocuments.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.SliderImage, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	var out models.SliderImage
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.SliderImage{}, err
	}
	return out, nil
}

// Delete removes the image and returns it, or mongo.ErrNoDocuments.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.SliderImage, error) {
	var out models.SliderImage
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return models.SliderImage{}, err
	}
	return out, nil
}

// Reorder sets order := index for every image in plan in one transaction.
// Unknown ids fail with NotFound and nothing is written.
func (s *Store) Reorder(ctx context.Context, plan []ordering.Assignment) error {
	ids := make([]primitive.ObjectID, 0, len(plan))
	var malformed []string
	for _, a := range plan {
		oid, err := primitive.ObjectIDFromHex(a.ID)
		if err != nil {
			malformed = append(malformed, a.ID)
			continue
		}
		ids = append(ids, oid)
	}
	if len(malformed) > 0 {
		return apperr.NotFoundIDs("slider image ids", malformed)
	}

	unlock := locks.Lock(ReorderScope)
	defer unlock()

	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return err
		}
		if int(n) != len(ids) {
			var found []struct {
				ID primitive.ObjectID `bson:"_id"`
			}
			cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(bson.M{"_id": 1}))
			if err != nil {
				return err
			}
			if err := cur.All(ctx, &found); err != nil {
				return err
			}
			have := make([]string, len(found))
			for i, f := range found {
				have[i] = f.ID.Hex()
			}
			return apperr.NotFoundIDs("slider image ids", ordering.Missing(ordering.IDs(plan), have))
		}

		now := time.Now().UTC()
		writes := make([]mongo.WriteModel, len(plan))
		for i, a := range plan {
			writes[i] = mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": ids[i]}).
				SetUpdate(bson.M{"$set": bson.M{"order": a.Order, "updated_at": now}})
		}
		_, err = s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
		return err
	})
}
