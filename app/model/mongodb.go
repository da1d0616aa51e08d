package model

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity merepresentasikan 1 dokumen jejak aktivitas di MongoDB
// (collection: activities). Setiap operasi tulis (create/update/delete)
// mencatat satu dokumen; kegagalan pencatatan tidak menggagalkan request.
type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID   uuid.UUID          `bson:"actorId" json:"actor_id"`      // users.id pelaku
	ActorRole string             `bson:"actorRole" json:"actor_role"`  // admin / guru / siswa
	Action    string             `bson:"action" json:"action"`         // create / update / delete / verify / upload
	Entity    string             `bson:"entity" json:"entity"`         // user / dudi / magang / logbook / school_settings
	EntityID  string             `bson:"entityId" json:"entity_id"`    // id baris yang disentuh
	Note      *string            `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
