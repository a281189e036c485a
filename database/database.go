// Package database - Handles all interaction with ArangoDB
package database

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Collection names
const (
	OrgCollection  = "organisation"
	UserCollection = "user"
)

// DBConnection is the structure that defined the database engine and collections
type DBConnection struct {
	Collections map[string]arangodb.Collection
	Database    arangodb.Database
}

// Settings describes where and how to connect
type Settings struct {
	URL      string
	User     string
	Password string
	Database string
}

// Define a struct to hold the index definition
type indexConfig struct {
	Collection string
	IdxName    string
	IdxFields  []string
	Unique     bool
	Sparse     bool
}

// indexes backs the uniqueness rules of the store and the org-scoped user lookups
var indexes = []indexConfig{
	{Collection: OrgCollection, IdxName: "org_name_unique", IdxFields: []string{"org_name"}, Unique: true},
	{Collection: OrgCollection, IdxName: "org_slug_unique", IdxFields: []string{"org_slug"}, Unique: true, Sparse: true},
	{Collection: OrgCollection, IdxName: "org_status", IdxFields: []string{"status"}},
	{Collection: UserCollection, IdxName: "user_org_id", IdxFields: []string{"org_id"}},
	{Collection: UserCollection, IdxName: "user_org_created", IdxFields: []string{"org_id", "created_date"}},
}

// InitLogger sets up the Zap Logger to log to the console in a human readable format
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	logger, _ := prodConfig.Build()
	return logger
}

func dbConnectionConfig(endpoint connection.Endpoint, dbuser string, dbpass string) connection.HttpConfiguration {
	return connection.HttpConfiguration{
		Authentication: connection.NewBasicAuth(dbuser, dbpass),
		Endpoint:       endpoint,
		ContentType:    connection.ApplicationJSON,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, // #nosec G402
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 90 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// InitializeDatabase connects to the db engine and creates the database, collections and indexes.
// Connection attempts are retried with exponential backoff until ctx is done.
func InitializeDatabase(ctx context.Context, settings Settings, logger *zap.Logger) (DBConnection, error) {
	const initialInterval = 2 * time.Second
	const maxInterval = 1 * time.Minute

	log := logger.Sugar()
	var client arangodb.Client

	//
	// Database connection with backoff retry
	//

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval
	bo.MaxElapsedTime = 0 // retry until the context gives up

	err := backoff.RetryNotify(func() error {
		endpoint := connection.NewRoundRobinEndpoints([]string{settings.URL})
		conn := connection.NewHttpConnection(dbConnectionConfig(endpoint, settings.User, settings.Password))

		client = arangodb.NewClient(conn)

		versionInfo, err := client.Version(ctx)
		if err != nil {
			return err
		}

		log.Infof("Database has version '%s' and license '%s'", versionInfo.Version, versionInfo.License)
		return nil
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		log.Warnf("Retrying connection to ArangoDB in %s: %v", next, err)
	})
	if err != nil {
		return DBConnection{}, err
	}

	//
	// Database creation
	//

	var db arangodb.Database
	exists, err := client.DatabaseExists(ctx, settings.Database)
	if err != nil {
		return DBConnection{}, err
	}

	if exists {
		if db, err = client.GetDatabase(ctx, settings.Database, &arangodb.GetDatabaseOptions{}); err != nil {
			return DBConnection{}, err
		}
	} else {
		if db, err = client.CreateDatabase(ctx, settings.Database, nil); err != nil {
			return DBConnection{}, err
		}
		log.Infof("Created database %s", settings.Database)
	}

	//
	// Collection creation for document storage
	//

	collections := make(map[string]arangodb.Collection)
	for _, collectionName := range []string{OrgCollection, UserCollection} {
		var col arangodb.Collection

		exists, _ = db.CollectionExists(ctx, collectionName)
		if exists {
			if col, err = db.GetCollection(ctx, collectionName, &arangodb.GetCollectionOptions{}); err != nil {
				return DBConnection{}, err
			}
		} else {
			if col, err = db.CreateCollection(ctx, collectionName, nil); err != nil {
				return DBConnection{}, err
			}
			log.Infof("Created collection %s", collectionName)
		}

		collections[collectionName] = col
	}

	//
	// Index creation
	//

	for _, idx := range indexes {
		if err := ensureIndex(ctx, collections[idx.Collection], idx); err != nil {
			return DBConnection{}, err
		}
	}

	return DBConnection{
		Database:    db,
		Collections: collections,
	}, nil
}

func ensureIndex(ctx context.Context, col arangodb.Collection, idx indexConfig) error {
	if existing, err := col.Indexes(ctx); err == nil {
		for _, index := range existing {
			if index.Name == idx.IdxName {
				return nil
			}
		}
	}

	unique := idx.Unique
	sparse := idx.Sparse
	_, _, err := col.EnsurePersistentIndex(ctx, idx.IdxFields, &arangodb.CreatePersistentIndexOptions{
		Unique: &unique,
		Sparse: &sparse,
		Name:   idx.IdxName,
	})
	return err
}
