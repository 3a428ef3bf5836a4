package models

import "time"

// BrowserSession is the MongoDB document backing one browser session.
type BrowserSession struct {
	SessionID string            `bson:"_id"`
	Values    map[string]string `bson:"values"`
	UpdatedAt time.Time         `bson:"updated_at"`
	ExpiresAt time.Time         `bson:"expires_at"`
}
