// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/paging"
	"github.com/dalemusser/estatehub/internal/app/system/search"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contacts")}
}

// Filter narrows List. Empty fields mean "any".
type Filter struct {
	Status   string
	Priority string
	IsRead   *bool
	Search   string // matched against name, email, phone and message
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.IsRead != nil {
		q["is_read"] = *f.IsRead
	}
	return search.Merge(q, search.ContainsFold(f.Search, "name", "email", "phone", "message"))
}

// Stats summarises the inbox.
type Stats struct {
	Total      int64            `json:"total"`
	Unread     int64            `json:"unread"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPriority map[string]int64 `json:"byPriority"`
}

// Create stores a new lead as status new, priority medium, unread.
func (s *Store) Create(ctx context.Context, c models.Contact) (models.Contact, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.Status = models.ContactStatusNew
	c.Priority = models.PriorityMedium
	c.IsRead = false
	c.ReadAt = nil
	c.Notes = ""
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// List returns contacts newest first and the total number of matches.
func (s *Store) List(ctx context.Context, f Filter, page paging.Params) ([]models.Contact, int64, error) {
	q := f.query()
	opts := page.ApplyToFind(options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))

	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.Contact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns a contact without changing it, or mongo.ErrNoDocuments.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Contact, error) {
	var c models.Contact
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// Update applies set and returns the updated contact. Setting is_read keeps
// read_at consistent.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Contact, error) {
	if set == nil {
		set = bson.M{}
	}
	now := time.Now().UTC()
	set["updated_at"] = now

	update := bson.M{}
	if read, ok := set["is_read"].(bool); ok {
		if read {
			set["read_at"] = now
		} else {
			update["$unset"] = bson.M{"read_at": ""}
		}
	}
	update["$set"] = set

	var out models.Contact
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.Contact{}, err
	}
	return out, nil
}

// MarkRead sets is_read and read_at.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID, read bool) (models.Contact, error) {
	return s.Update(ctx, id, bson.M{"is_read": read})
}

// Delete removes a contact by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Stats counts contacts per status and priority in one aggregation.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"status": bson.A{bson.M{"$group": bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}}},
			"priority": bson.A{bson.M{"$group": bson.M{"_id": "$priority", "n": bson.M{"$sum": 1}}}},
			"unread": bson.A{
				bson.M{"$match": bson.M{"is_read": false}},
				bson.M{"$count": "n"},
			},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return Stats{}, err
	}
	defer cur.Close(ctx)

	type bucket struct {
		ID string `bson:"_id"`
		N  int64  `bson:"n"`
	}
	var rows []struct {
		Status   []bucket `bson:"status"`
		Priority []bucket `bson:"priority"`
		Unread   []struct {
			N int64 `bson:"n"`
		} `bson:"unread"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return Stats{}, err
	}

	st := Stats{ByStatus: map[string]int64{}, ByPriority: map[string]int64{}}
	for _, v := range models.ContactStatuses() {
		st.ByStatus[v] = 0
	}
	for _, v := range models.Priorities() {
		st.ByPriority[v] = 0
	}
	if len(rows) == 0 {
		return st, nil
	}
	for _, b := range rows[0].Status {
		st.ByStatus[b.ID] = b.N
		st.Total += b.N
	}
	for _, b := range rows[0].Priority {
		st.ByPriority[b.ID] = b.N
	}
	if len(rows[0].Unread) > 0 {
		st.Unread = rows[0].Unread[0].N
	}
	return st, nil
}
