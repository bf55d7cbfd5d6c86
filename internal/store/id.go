// Package store holds the persistent item stores. Both drivers hand out
// 24-char hex ObjectIDs so ids look the same whichever one is configured.
package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("cast to ObjectID failed for value %q: %w", id, err)
	}
	return oid, nil
}
