package query

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/database/mongoclient"
	"github.com/heritage-x/goapi/base/log"
	"github.com/heritage-x/goapi/domain"
)

const (
	queryMaxTime = 20 * time.Second
)

type impl struct {
	client *mongoclient.Client
}

// New initializes a Mongo query service
func New(client *mongoclient.Client) Mongo {
	return &impl{client: client}
}

func (im *impl) collection(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	if _, err := im.collection(table).InsertOne(c, insert); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		c.WithFields(log.Fields{"err": err, "table": table}).Error("Insert: InsertOne failed")
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	opts := options.FindOne().SetMaxTime(queryMaxTime)
	res := im.collection(table).FindOne(c, query, opts)
	if err := res.Err(); err == mongo.ErrNoDocuments {
		return ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table}).Error("FindOne failed")
		return err
	}
	if err := res.Decode(result); err != nil {
		c.WithFields(log.Fields{"err": err, "table": table}).Error("FindOne: Decode failed")
		return err
	}
	return nil
}

func (im *impl) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	opts := options.Count().SetMaxTime(queryMaxTime)
	n, err := im.collection(table).CountDocuments(c, selector, opts)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table}).Error("Count failed")
		return 0, err
	}
	return int(n), nil
}

func (im *impl) Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	opts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if sort != "" {
		dir := 1
		field := sort
		if strings.HasPrefix(sort, "-") {
			dir = -1
			field = sort[1:]
		}
		opts.SetSort(map[string]int{field: dir})
	}

	cur, err := im.collection(table).Find(c, query, opts)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table}).Error("Search: Find failed")
		return err
	}
	defer cur.Close(c)

	if err := cur.All(c, results); err != nil {
		c.WithFields(log.Fields{"err": err, "table": table}).Error("Search: decode failed")
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	res, err := im.collection(table).DeleteOne(c, selector)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "table": table}).Error("Remove: DeleteOne failed")
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
