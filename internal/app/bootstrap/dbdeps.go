// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/estatehub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	EstateHubMongoClient   *mongo.Client
	EstateHubMongoDatabase *mongo.Database

	// AuditRetention is nil when audit_retention is 0.
	AuditRetention *workers.AuditRetention
}
