// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxQueryLength bounds the user-supplied search text.
const MaxQueryLength = 100

// Clean trims q and truncates it to MaxQueryLength runes.
func Clean(q string) string {
	q = strings.TrimSpace(q)
	if r := []rune(q); len(r) > MaxQueryLength {
		q = string(r[:MaxQueryLength])
	}
	return q
}

// ContainsFold returns a filter matching documents where any of fields
// contains q, case-insensitively. q is matched literally. An empty q
// returns nil.
//
//	filter["$or"] = search.ContainsFold(q, "title", "location")["$or"]
func ContainsFold(q string, fields ...string) bson.M {
	q = Clean(q)
	if q == "" || len(fields) == 0 {
		return nil
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}

// Merge adds the clauses of extra to filter. Keys already in filter are
// combined under $and so neither side is lost.
func Merge(filter, extra bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	for k, v := range extra {
		if _, clash := filter[k]; !clash {
			filter[k] = v
			continue
		}
		and, _ := filter["$and"].(bson.A)
		filter["$and"] = append(and, bson.M{k: v})
	}
	return filter
}
