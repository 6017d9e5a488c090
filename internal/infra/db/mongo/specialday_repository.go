package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainvilla "villadesk/internal/domain/villa"
)

type SpecialDayRepository struct {
	col *mongo.Collection
}

func NewSpecialDayRepository(db *mongo.Database) *SpecialDayRepository {
	return &SpecialDayRepository{col: db.Collection("special_days")}
}

func (r *SpecialDayRepository) ByID(ctx context.Context, id string) (*domainvilla.GlobalSpecialDay, error) {
	var doc specialDayDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainvilla.ErrSpecialDayNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *SpecialDayRepository) Save(ctx context.Context, day *domainvilla.GlobalSpecialDay) error {
	doc := newSpecialDayDocument(day)
	_, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

func (r *SpecialDayRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainvilla.ErrSpecialDayNotFound
	}
	return nil
}

func (r *SpecialDayRepository) List(ctx context.Context) ([]*domainvilla.GlobalSpecialDay, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "month", Value: 1}, {Key: "day", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainvilla.GlobalSpecialDay
	for cursor.Next(ctx) {
		var doc specialDayDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type specialDayDocument struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Day       int    `bson:"day"`
	Month     int    `bson:"month"`
	Year      int    `bson:"year"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func newSpecialDayDocument(d *domainvilla.GlobalSpecialDay) specialDayDocument {
	return specialDayDocument{
		ID:        d.ID,
		Name:      d.Name,
		Day:       d.Day,
		Month:     int(d.Month),
		Year:      d.Year,
		CreatedAt: d.CreatedAt.UnixMilli(),
		UpdatedAt: d.UpdatedAt.UnixMilli(),
	}
}

func (d specialDayDocument) toAggregate() *domainvilla.GlobalSpecialDay {
	return &domainvilla.GlobalSpecialDay{
		ID:        d.ID,
		Name:      d.Name,
		Day:       d.Day,
		Month:     time.Month(d.Month),
		Year:      d.Year,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}
