package tables

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	tableName struct{}  `bun:"table:subscriptions,alias:sub"`
	Id        uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email     string    `json:"email" bun:"email,unique,notnull"`
	IsActive  bool      `json:"is_active" bun:"is_active,notnull,default:true"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
}
