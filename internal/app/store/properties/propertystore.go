// internal/app/store/properties/propertystore.go
package propertystore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/ordering"
	"github.com/dalemusser/estatehub/internal/app/system/paging"
	"github.com/dalemusser/estatehub/internal/app/system/search"
	"github.com/dalemusser/estatehub/internal/app/system/txn"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ReorderScope serialises every write to the order field of properties.
const ReorderScope = "properties"

var locks = ordering.NewLocker()

// Sort is the display order: order, then creation time, then id.
var Sort = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

type Store struct {
	db  *mongo.Database
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("properties"), log: zap.L()}
}

// Filter narrows List. Zero values mean "no filter".
type Filter struct {
	AreaKey         string
	Search          string // matched against title and location
	MinBeds         int
	Feature         string
	IncludeInactive bool
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if !f.IncludeInactive {
		q["is_active"] = true
	}
	if f.AreaKey != "" {
		q["area_key"] = f.AreaKey
	}
	if f.MinBeds > 0 {
		q["beds"] = bson.M{"$gte": f.MinBeds}
	}
	if f.Feature != "" {
		q["features"] = f.Feature
	}
	return search.Merge(q, search.ContainsFold(f.Search, "title", "location"))
}

// List returns the properties matching f in display order and the total
// number of matches. A nil page returns every match.
func (s *Store) List(ctx context.Context, f Filter, page *paging.Params) ([]models.Property, int64, error) {
	q := f.query()
	opts := options.Find().SetSort(Sort)
	if page != nil {
		page.ApplyToFind(opts)
	}
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.Property{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	total := int64(len(out))
	if page != nil {
		if total, err = s.c.CountDocuments(ctx, q); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

// GetByID returns a property by its ID or mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Property, error) {
	var p models.Property
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Property{}, err
	}
	return p, nil
}

// NextOrder returns max(order)+1 across all properties, or 0 when empty.
func (s *Store) NextOrder(ctx context.Context) (int, error) {
	var top struct {
		Order int `bson:"order"`
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "order", Value: -1}}).
		SetProjection(bson.M{"order": 1})
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return top.Order + 1, nil
}

// Create inserts p. When order is nil the property is appended after every
// existing one.
func (s *Store) Create(ctx context.Context, p models.Property, order *int) (models.Property, error) {
	unlock := locks.Lock(ReorderScope)
	defer unlock()

	if order != nil {
		p.Order = *order
	} else {
		next, err := s.NextOrder(ctx)
		if err != nil {
			return models.Property{}, err
		}
		p.Order = next
	}

	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Property{}, err
	}
	return p, nil
}

// Update applies set (bson field -> value) and returns the updated document.
// Returns mongo.ErrNoDocuments when id is unknown.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Property, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	var out models.Property
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.Property{}, err
	}
	return out, nil
}

// Delete removes a property by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountActiveByArea returns how many active properties reference areaKey.
func (s *Store) CountActiveByArea(ctx context.Context, areaKey string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"area_key": areaKey, "is_active": true})
}

// Reorder sets order := index for every property in plan, in one
// transaction. When areaKey is non-empty every listed property must belong
// to that area. Properties not listed keep their order. Unknown ids fail
// with NotFound and nothing is written.
func (s *Store) Reorder(ctx context.Context, plan []ordering.Assignment, areaKey string) error {
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
		return apperr.NotFoundIDs("property ids", malformed)
	}

	unlock := locks.Lock(ReorderScope)
	defer unlock()

	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		var found []struct {
			ID      primitive.ObjectID `bson:"_id"`
			AreaKey string             `bson:"area_key"`
		}
		cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
			options.Find().SetProjection(bson.M{"_id": 1, "area_key": 1}))
		if err != nil {
			return err
		}
		if err := cur.All(ctx, &found); err != nil {
			return err
		}

		have := make([]string, 0, len(found))
		var foreign []string
		for _, f := range found {
			have = append(have, f.ID.Hex())
			if areaKey != "" && f.AreaKey != areaKey {
				foreign = append(foreign, f.ID.Hex())
			}
		}
		if missing := ordering.Missing(ordering.IDs(plan), have); len(missing) > 0 {
			return apperr.NotFoundIDs("property ids", missing)
		}
		if len(foreign) > 0 {
			return apperr.Invalid("propertyIds",
				fmt.Sprintf("Properties not in area %s: %s", areaKey, strings.Join(foreign, ", ")))
		}

		now := time.Now().UTC()
		writes := make([]mongo.WriteModel, 0, len(plan))
		for i, a := range plan {
			writes = append(writes, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": ids[i]}).
				SetUpdate(bson.M{"$set": bson.M{"order": a.Order, "updated_at": now}}))
		}
		_, err = s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
		return err
	})
}
