package mongoclient

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/heritage-x/goapi/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
)

// Client wraps mongo.Client together with the database name it serves
type Client struct {
	DbName string
	*mongo.Client
}

// MustConnectMongoClient returns a connected client or panics
func MustConnectMongoClient(uri, dbName string, setSafe bool) *Client {
	cli, err := ConnectMongoClient(uri, dbName, setSafe)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient returns a mongo driver client
func ConnectMongoClient(uri, dbName string, setSafe bool) (*Client, error) {
	ctx := context.Background()

	clientOpts := options.Client()
	clientOpts.ApplyURI(uri)
	clientOpts.SetSocketTimeout(mgSocketTimeout)
	clientOpts.SetRetryWrites(true)

	if setSafe {
		// wait for a majority of replica set members on writes
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}

	client, err := mongo.NewClient(clientOpts)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": dbName, "err": err}).Error("fail to create mongo client")
		return nil, err
	}

	if err := client.Connect(ctx); err != nil {
		log.Log().WithFields(log.Fields{"dbName": dbName, "err": err}).Error("fail to connect mongo db")
		return nil, err
	}

	// test if dbName is reachable
	if _, err := client.Database(dbName).ListCollectionNames(ctx, bson.D{}); err != nil {
		log.Log().WithFields(log.Fields{"dbName": dbName, "err": err}).Error("fail to list collections")
		return nil, err
	}

	return &Client{DbName: dbName, Client: client}, nil
}
