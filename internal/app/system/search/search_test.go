package search

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClean(t *testing.T) {
	if got := Clean("  villa  "); got != "villa" {
		t.Errorf("Clean() = %q", got)
	}
	long := strings.Repeat("é", MaxQueryLength+5)
	if got := Clean(long); len([]rune(got)) != MaxQueryLength {
		t.Errorf("Clean() length = %d, want %d", len([]rune(got)), MaxQueryLength)
	}
}

func TestContainsFold(t *testing.T) {
	if ContainsFold("   ", "title") != nil {
		t.Error("expected nil filter for blank query")
	}
	if ContainsFold("villa") != nil {
		t.Error("expected nil filter without fields")
	}

	f := ContainsFold("a.b (c)", "title", "location")
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("$or = %#v", f["$or"])
	}
	clause := or[1].(bson.M)
	re, ok := clause["location"].(primitive.Regex)
	if !ok {
		t.Fatalf("location clause = %#v", clause)
	}
	if re.Pattern != `a\.b \(c\)` || re.Options != "i" {
		t.Errorf("regex = %+v", re)
	}
}

func TestMerge(t *testing.T) {
	f := Merge(bson.M{"is_active": true}, bson.M{"area_key": "dha"})
	if f["area_key"] != "dha" || f["is_active"] != true {
		t.Errorf("Merge() = %v", f)
	}

	f = Merge(bson.M{"$or": bson.A{1}}, bson.M{"$or": bson.A{2}})
	and, ok := f["$and"].(bson.A)
	if !ok || len(and) != 1 {
		t.Fatalf("$and = %#v", f["$and"])
	}
	if len(f["$or"].(bson.A)) != 1 {
		t.Errorf("original $or was replaced: %v", f["$or"])
	}

	if got := Merge(nil, bson.M{"x": 1}); got["x"] != 1 {
		t.Errorf("Merge(nil) = %v", got)
	}
}
