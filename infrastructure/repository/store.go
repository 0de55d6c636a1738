package repository

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Fixed document keys.
const (
	UsersKey         = "captive_users"
	AdsKey           = "captive_ads"
	AdClicksKey      = "captive_ad_clicks"
	CurrentUserIDKey = "current_user_id"
	RateKey          = "dolar_rate"
)

// DocumentStore keeps whole JSON documents by key. There is no partial update
// and no locking across a read followed by a write.
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// readDocument decodes the document under key. A missing or malformed document
// yields the zero T and found=false; malformed ones are logged. The decoder may
// fill part of its target before failing, so nothing partial is ever returned.
func readDocument[T any](ctx context.Context, store DocumentStore, key string) (T, bool, error) {
	var zero T

	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return zero, false, errors.Wrapf(err, "reading %s", key)
	}
	if !found {
		return zero, false, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"error": err,
		}).Warn("Malformed document ignored")
		return zero, false, nil
	}

	return v, true, nil
}

func writeDocument(ctx context.Context, store DocumentStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}

	if err := store.Put(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	return nil
}
