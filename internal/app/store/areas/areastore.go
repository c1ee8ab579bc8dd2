// internal/app/store/areas/areastore.go
package areastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/app/system/ordering"
	"github.com/dalemusser/estatehub/internal/app/system/search"
	"github.com/dalemusser/estatehub/internal/app/system/txn"
	"github.com/dalemusser/estatehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ReorderScope serialises writes to the top-level order of areas.
const ReorderScope = "areas"

var (
	ErrDuplicateKey = errors.New("an area with this key already exists")

	// ErrConcurrentUpdate is returned when the area changed between load and save.
	ErrConcurrentUpdate = apperr.Conflict("The area was modified by another request. Reload and try again.")
)

var locks = ordering.NewLocker()

// Sort is the display order: order, then creation time, then id.
var Sort = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

type Store struct {
	db  *mongo.Database
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("areas"), log: zap.L()}
}

// treeScope is the lock scope for the embedded tree of one area.
func treeScope(key string) string { return "area:" + key }

// sortTree puts sub-areas and their societies in display order.
func sortTree(a *models.Area) {
	if a.SubAreas == nil {
		a.SubAreas = []models.SubArea{}
	}
	ordering.Sort(a.SubAreas, func(s *models.SubArea) int { return s.Order })
	for i := range a.SubAreas {
		sa := &a.SubAreas[i]
		if sa.Societies == nil {
			sa.Societies = []models.Society{}
		}
		ordering.Sort(sa.Societies, func(s *models.Society) int { return s.Order })
	}
}

// List returns every area in display order. q filters by name.
func (s *Store) List(ctx context.Context, q string) ([]models.Area, error) {
	filter := search.Merge(bson.M{}, search.ContainsFold(text.Fold(q), "name_ci", "key"))
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(Sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Area{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		sortTree(&out[i])
	}
	return out, nil
}

// GetByKey returns an area by key or mongo.ErrNoDocuments.
func (s *Store) GetByKey(ctx context.Context, key string) (models.Area, error) {
	var a models.Area
	if err := s.c.FindOne(ctx, bson.M{"key": key}).Decode(&a); err != nil {
		return models.Area{}, err
	}
	sortTree(&a)
	return a, nil
}

// NextOrder returns max(order)+1 across all areas, or 0 when empty.
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

// Create inserts a. When order is nil the area is appended. Sub-areas
// without an id get one from the clock.
func (s *Store) Create(ctx context.Context, a models.Area, order *int) (models.Area, error) {
	unlock := locks.Lock(ReorderScope)
	defer unlock()

	if order != nil {
		a.Order = *order
	} else {
		next, err := s.NextOrder(ctx)
		if err != nil {
			return models.Area{}, err
		}
		a.Order = next
	}

	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.NameCI = text.Fold(a.Name)
	a.Version = 0
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.SubAreas == nil {
		a.SubAreas = []models.SubArea{}
	}
	for i := range a.SubAreas {
		if a.SubAreas[i].ID == 0 {
			a.SubAreas[i].ID = newSubAreaID(&a, now)
		}
		if a.SubAreas[i].Societies == nil {
			a.SubAreas[i].Societies = []models.Society{}
		}
	}
	if err := checkTree(&a); err != nil {
		return models.Area{}, err
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Area{}, ErrDuplicateKey
		}
		return models.Area{}, err
	}
	sortTree(&a)
	return a, nil
}

// Update applies set (bson field -> value) to the top-level fields of the
// area and returns the updated document. The key cannot be changed.
func (s *Store) Update(ctx context.Context, key string, set bson.M) (models.Area, error) {
	if set == nil {
		set = bson.M{}
	}
	delete(set, "key")
	delete(set, "sub_areas")
	delete(set, "version")
	if name, ok := set["name"].(string); ok {
		set["name_ci"] = text.Fold(name)
	}
	set["updated_at"] = time.Now().UTC()

	var out models.Area
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"key": key},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.Area{}, err
	}
	sortTree(&out)
	return out, nil
}

// Delete removes the area unless an active property still references its
// key. The check and the delete run in one transaction when supported.
// Returns mongo.ErrNoDocuments for an unknown key and a Conflict error when
// the area is in use.
func (s *Store) Delete(ctx context.Context, key string) error {
	unlock := locks.Lock(treeScope(key))
	defer unlock()

	props := s.db.Collection("properties")
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		n, err := props.CountDocuments(ctx, bson.M{"area_key": key, "is_active": true})
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict(fmt.Sprintf(
				"Cannot delete area %q: %d active %s reference it.", key, n, plural(n, "property", "properties")))
		}
		res, err := s.c.DeleteOne(ctx, bson.M{"key": key})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
}

// Reorder sets order := index for every area key in plan, in one
// transaction. Areas not listed keep their order. Unknown keys fail with
// NotFound and nothing is written.
func (s *Store) Reorder(ctx context.Context, plan []ordering.Assignment) error {
	unlock := locks.Lock(ReorderScope)
	defer unlock()

	keys := ordering.IDs(plan)
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		var found []struct {
			Key string `bson:"key"`
		}
		cur, err := s.c.Find(ctx, bson.M{"key": bson.M{"$in": keys}},
			options.Find().SetProjection(bson.M{"key": 1}))
		if err != nil {
			return err
		}
		if err := cur.All(ctx, &found); err != nil {
			return err
		}
		have := make([]string, len(found))
		for i, f := range found {
			have[i] = f.Key
		}
		if missing := ordering.Missing(keys, have); len(missing) > 0 {
			return apperr.NotFoundIDs("area keys", missing)
		}

		now := time.Now().UTC()
		writes := make([]mongo.WriteModel, 0, len(plan))
		for _, a := range plan {
			writes = append(writes, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"key": a.ID}).
				SetUpdate(bson.M{"$set": bson.M{"order": a.Order, "updated_at": now}}))
		}
		_, err = s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
		return err
	})
}

// Mutate loads the area, applies fn to it and saves the embedded tree with a
// single update guarded by the loaded version. fn may return an error to
// abort without writing. Returns mongo.ErrNoDocuments for an unknown key and
// ErrConcurrentUpdate when another writer saved first.
func (s *Store) Mutate(ctx context.Context, key string, fn func(a *models.Area) error) (models.Area, error) {
	unlock := locks.Lock(treeScope(key))
	defer unlock()

	a, err := s.GetByKey(ctx, key)
	if err != nil {
		return models.Area{}, err
	}
	if err := fn(&a); err != nil {
		return models.Area{}, err
	}
	if err := checkTree(&a); err != nil {
		return models.Area{}, err
	}

	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"key": key, "version": a.Version},
		bson.M{
			"$set": bson.M{"sub_areas": a.SubAreas, "updated_at": now},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return models.Area{}, err
	}
	if res.MatchedCount == 0 {
		s.log.Warn("area version mismatch", zap.String("area_key", key), zap.Int64("version", a.Version))
		return models.Area{}, ErrConcurrentUpdate
	}
	a.Version++
	a.UpdatedAt = now
	sortTree(&a)
	return a, nil
}

// checkTree enforces id uniqueness within the area and name uniqueness
// within each sub-area.
func checkTree(a *models.Area) error {
	ids := make(map[int64]struct{}, len(a.SubAreas))
	for i := range a.SubAreas {
		sa := &a.SubAreas[i]
		if _, dup := ids[sa.ID]; dup {
			return apperr.Conflict(fmt.Sprintf("Sub-area id %d already exists in area %s.", sa.ID, a.Key))
		}
		ids[sa.ID] = struct{}{}
		names := make(map[string]struct{}, len(sa.Societies))
		for _, soc := range sa.Societies {
			if _, dup := names[soc.Name]; dup {
				return apperr.Conflict(fmt.Sprintf("Society %q already exists in sub-area %d.", soc.Name, sa.ID))
			}
			names[soc.Name] = struct{}{}
		}
	}
	return nil
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
